package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newAPIClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", errorStyle.Render("[error]"), err)
			os.Exit(1)
		}

		user, err := client.GetUser()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
			fmt.Println(dimStyle.Render("  authenticate with: strato login"))
			os.Exit(1)
		}

		fmt.Println(user.Username)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
