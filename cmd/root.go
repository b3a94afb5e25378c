package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/api"
	"github.com/stratohq/strato/internal/config"
	"github.com/stratohq/strato/internal/utils"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)
)

// swapped out by tests that assert exit behavior
var osExit = os.Exit

var (
	flagDebug        bool
	flagToken        string
	flagScope        string
	flagLocalConfig  string
	flagGlobalConfig string
)

var rootCmd = &cobra.Command{
	Use:   "strato",
	Short: "command-line client for the strato deployment platform",
	Long: titleStyle.Render(`
    _____/ /________ _/ /_____
   / ___/ __/ ___/ `+"`"+`/ __/ __ \
  (__  ) /_/ /  / /_/ / /_/ /_/ /
 /____/\__/_/   \__,_/\__/\____/
`) + "\n" + subtitleStyle.Render("deploy from your terminal") + "\n\n" +
		"List, inspect and manage deployments on the strato platform.",
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func SetVersionInfo(v, bt, gc string) {
	version = v
	buildTime = bt
	gitCommit = gc
	rootCmd.Version = fmt.Sprintf("%s (built: %s, commit: %s)", version, buildTime, gitCommit)
}

func Execute() {
	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		os.Exit(2)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] Error: %v", err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "debug output")
	rootCmd.PersistentFlags().StringVarP(&flagToken, "token", "t", "", "API token to authenticate with")
	rootCmd.PersistentFlags().StringVarP(&flagScope, "scope", "S", "", "team scope to operate under")
	rootCmd.PersistentFlags().StringVarP(&flagLocalConfig, "local-config", "A", "", "path to the project config file")
	rootCmd.PersistentFlags().StringVarP(&flagGlobalConfig, "global-config", "Q", "", "directory holding the global config")
}

// newAPIClient builds the API client from the resolved global config and
// the persistent flags.
func newAPIClient() (*api.Client, *config.ConfigManager, error) {
	cm, err := config.NewConfigManager(flagGlobalConfig)
	if err != nil {
		return nil, nil, err
	}

	token := cm.Token(flagToken)
	if token != "" {
		log.Debugf("authenticating with token %s", utils.MaskSensitive(token, 4))
	}

	return api.NewClient(cm.APIURL(), token), cm, nil
}

// projectRoot resolves the directory the command operates on: the
// directory of --local-config when given, otherwise the working directory.
func projectRoot() (string, error) {
	if flagLocalConfig != "" {
		abs, err := filepath.Abs(flagLocalConfig)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("path does not exist: %s", abs)
			}
			return "", fmt.Errorf("failed to access path: %w", err)
		}
		return utils.ValidateProjectPath(filepath.Dir(abs))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return utils.ValidateProjectPath(cwd)
}

// scopeFor resolves the team scope: explicit flag, then the configured
// default scope.
func scopeFor(cm *config.ConfigManager) string {
	if flagScope != "" {
		return flagScope
	}
	return cm.GetConfig().DefaultScope
}
