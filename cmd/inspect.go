package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/containerd/errdefs"
	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/deployments"
	"github.com/stratohq/strato/pkg/models"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [url|name]",
	Short: "Show deployment details",
	Long:  "Display detailed information about a single deployment, looked up by URL or name",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	target := args[0]

	client, cm, err := newAPIClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	d, err := client.FindDeployment(target, scopeFor(cm))
	if err != nil {
		if errdefs.IsNotFound(err) {
			fmt.Fprintf(os.Stderr, "%s deployment not found: %s\n", errorStyle.Render("[error]"), target)
			fmt.Println()
			fmt.Println(dimStyle.Render("  list recent deployments with: strato ls"))
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	now := time.Now()

	fmt.Println(titleStyle.Render(fmt.Sprintf("==> deployment: %s", d.URL)))
	fmt.Println()

	fmt.Println(labelStyle.Render("  general:"))
	fmt.Printf("    %s %s\n", dimStyle.Render("project:"), valueStyle.Render(d.Name))
	fmt.Printf("    %s %s\n", dimStyle.Render("url:"), infoStyle.Render("https://"+d.URL))
	fmt.Printf("    %s %s\n", dimStyle.Render("state:"), stateCell(d.State))
	fmt.Printf("    %s %s\n", dimStyle.Render("creator:"), valueStyle.Render(d.Creator.Username))
	fmt.Println()

	fmt.Println(labelStyle.Render("  timing:"))
	fmt.Printf("    %s %s\n", dimStyle.Render("created:"), valueStyle.Render(d.Created().Format("2006-01-02 15:04:05")))
	fmt.Printf("    %s %s\n", dimStyle.Render("age:"), valueStyle.Render(deployments.Age(now, *d)))
	fmt.Printf("    %s %s\n", dimStyle.Render("build duration:"), valueStyle.Render(deployments.Duration(*d)))
	fmt.Println()

	if len(d.Meta) > 0 {
		fmt.Println(labelStyle.Render("  metadata:"))
		for key, value := range d.Meta {
			fmt.Printf("    %s %s=%s\n", dimStyle.Render("•"), valueStyle.Render(key), value)
		}
		fmt.Println()
	}

	if d.State == models.DeploymentStateError {
		fmt.Println(dimStyle.Render("  the build failed; redeploy after fixing the error"))
		fmt.Println()
	}
}
