package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/link"
	"github.com/stratohq/strato/internal/utils"
	"github.com/stratohq/strato/pkg/models"
)

var linkProject string

var linkCmd = &cobra.Command{
	Use:   "link [path]",
	Short: "Link a directory to a project",
	Long:  "Associate a local directory with a remote project and org so commands can resolve them implicitly",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLink,
}

func init() {
	linkCmd.Flags().StringVar(&linkProject, "project", "", "Project name (defaults to the directory name)")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	root, err := utils.ValidateProjectPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	client, cm, err := newAPIClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	project := linkProject
	if project == "" {
		project = filepath.Base(root)
	}
	if !utils.IsValidName(project) {
		fmt.Fprintf(os.Stderr, "%s invalid project name: %s\n", errorStyle.Render("[error]"), project)
		fmt.Println(dimStyle.Render("  names may only contain lowercase letters, digits and hyphens"))
		os.Exit(1)
	}

	org := scopeFor(cm)
	if org == "" {
		user, err := client.GetUser()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s no scope given and unable to resolve user: %v\n", errorStyle.Render("[error]"), err)
			fmt.Println(dimStyle.Render("  pass one with --scope, or authenticate with 'strato login'"))
			os.Exit(1)
		}
		org = user.Username
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("==> linking: %s → %s/%s", root, org, project)))
	fmt.Println()

	if err := link.Write(root, models.Link{Org: org, Project: project}); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	fmt.Println(successStyle.Render("  [done] directory linked"))
	fmt.Println()
	fmt.Println(labelStyle.Render("  next steps:"))
	fmt.Printf("    %s\n", dimStyle.Render("strato ls         # list deployments of this project"))
	fmt.Printf("    %s\n", dimStyle.Render("strato unlink     # remove the link"))
	fmt.Println()
}
