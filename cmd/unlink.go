package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/link"
	"github.com/stratohq/strato/internal/utils"
	"github.com/stratohq/strato/pkg/models"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink [path]",
	Short: "Unlink a directory from its project",
	Long:  "Remove the association between a local directory and its remote project",
	Args:  cobra.MaximumNArgs(1),
	Run:   runUnlink,
}

func init() {
	rootCmd.AddCommand(unlinkCmd)
}

func runUnlink(cmd *cobra.Command, args []string) {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	root, err := utils.ValidateProjectPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	lnk, err := link.Read(root)
	if err == nil && lnk.Status == models.LinkStatusNotLinked {
		fmt.Println(dimStyle.Render("  this directory is not linked to a project"))
		return
	}

	if err := link.Remove(root); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	fmt.Println(successStyle.Render("  [done] directory unlinked"))
}
