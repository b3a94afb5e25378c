package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/api"
	"github.com/stratohq/strato/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the platform",
	Long:  "Store an API token in the global config; pass it with --token or enter it when prompted",
	Args:  cobra.NoArgs,
	Run:   runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	cm, err := config.NewConfigManager(flagGlobalConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	token := flagToken
	if token == "" {
		fmt.Println(titleStyle.Render("==> strato login"))
		fmt.Println()
		fmt.Println("  " + dimStyle.Render("create a token in the dashboard under account → tokens"))
		fmt.Print("  enter token: ")

		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		token = strings.TrimSpace(input)
	}

	if token == "" {
		fmt.Fprintf(os.Stderr, "%s a token is required\n", errorStyle.Render("[error]"))
		os.Exit(1)
	}

	client := api.NewClient(cm.APIURL(), token)
	user, err := client.GetUser()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s token verification failed: %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	cfg := cm.GetConfig()
	cfg.Token = token
	if flagScope != "" {
		cfg.DefaultScope = flagScope
	}

	if err := cm.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to save config: %v\n", errorStyle.Render("[error]"), err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("  [done]") + " logged in as " + valueStyle.Render(user.Username))
}
