package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/containerd/errdefs"
	"github.com/spf13/cobra"

	"github.com/stratohq/strato/internal/api"
	"github.com/stratohq/strato/internal/constants"
	"github.com/stratohq/strato/internal/deployments"
	"github.com/stratohq/strato/internal/link"
	"github.com/stratohq/strato/internal/utils"
	"github.com/stratohq/strato/pkg/models"
)

var (
	lsAll  bool
	lsMeta []string
	lsNext string
)

var lsCmd = &cobra.Command{
	Use:     "ls [app]",
	Aliases: []string{"list"},
	Short:   "List deployments",
	Long:    "Display recent deployments for the linked project or a named app, or the latest deployment of every project",
	Args:    cobra.MaximumNArgs(1),
	Run:     runLs,
}

func init() {
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Show all deployments instead of one per project")
	lsCmd.Flags().StringArrayVarP(&lsMeta, "meta", "m", nil, "Filter deployments by metadata (key=value), repeatable")
	lsCmd.Flags().StringVarP(&lsNext, "next", "N", "", "Show deployments older than this timestamp")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) {
	meta, err := deployments.ParseMeta(lsMeta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}

	var next int64
	if lsNext != "" {
		next, err = strconv.ParseInt(lsNext, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s the '--next' flag requires a numeric timestamp value\n", errorStyle.Render("[error]"))
			osExit(1)
		}
	}

	appArg := ""
	if len(args) == 1 {
		appArg = args[0]
	}

	// a hostname-like argument switches to filtering by deployment URL
	var host string
	app := appArg
	if appArg != "" {
		h, isHost, err := deployments.ParseHostFilter(appArg)
		if isHost {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
				osExit(1)
			}
			host = h
			app = ""
			fmt.Println(dimStyle.Render(fmt.Sprintf("  to inspect a single deployment run: strato inspect %s", host)))
			fmt.Println()
		} else if !utils.IsValidName(appArg) {
			fmt.Fprintf(os.Stderr, "%s invalid app name: %s\n", errorStyle.Render("[error]"), appArg)
			osExit(1)
		}
	}

	root, err := projectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}

	client, cm, err := newAPIClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}
	scope := scopeFor(cm)

	lnk, err := link.Read(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}

	switch lnk.Status {
	case models.LinkStatusNotLinked:
		if appArg == "" {
			fmt.Println(dimStyle.Render("  this directory is not linked to a project"))
			fmt.Println()
			fmt.Printf("  link it with: %s\n", dimStyle.Render("strato link"))
			fmt.Printf("  or list a specific app: %s\n", dimStyle.Render("strato ls <app>"))
			return
		}
	case models.LinkStatusLinked:
		if lnk.Org == "" {
			fmt.Fprintf(os.Stderr, "%s internal error: project link has no org, relink with 'strato link'\n", errorStyle.Render("[error]"))
			osExit(1)
		}
		if app == "" && host == "" {
			app = lnk.Project
		}
		if scope == "" {
			scope = lnk.Org
		}
	}

	query := api.DeploymentsQuery{
		App:   app,
		Scope: scope,
		Meta:  meta,
		Until: next,
		Limit: constants.DeploymentsPageSize,
	}

	deps, pagination, err := client.ListDeployments(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}

	if query.App != "" && !lsAll && len(deps) == 0 {
		// exact-name lookup distinguishes a missing project from an empty
		// history; either way the list below stays empty
		if _, err := client.FindDeployment(query.App, scope); err != nil && !errdefs.IsNotFound(err) {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
			osExit(1)
		}
	}

	deployments.SortByCreated(deps)
	if host != "" {
		deps = deployments.FilterByHost(deps, host)
	}

	if len(deps) == 0 {
		fmt.Println(dimStyle.Render("no deployments found."))
		return
	}

	if app != "" && !lsAll {
		renderAppDeployments(client, deps, app, scope)
	} else {
		// --all means ungrouped: every deployment stays its own row
		if host == "" && !lsAll {
			deps = deployments.FilterUniqueProjects(deps)
		}
		renderLatestDeployments(deps)
	}

	if pagination.Count == constants.DeploymentsPageSize && pagination.Next > 0 {
		fmt.Println(dimStyle.Render("  to display the next page run:"))
		fmt.Printf("    %s\n", dimStyle.Render(nextPageCommand(appArg, pagination.Next)))
		fmt.Println()
	}
}

// renderAppDeployments prints the full deployment history of one app,
// newest first, with the most recent row marked.
func renderAppDeployments(client *api.Client, deps []models.Deployment, app, scope string) {
	user, err := client.GetUser()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[error]"), err)
		osExit(1)
	}

	// the username column is redundant when listing your own scope
	showUser := scope != "" && user.Username != scope

	fmt.Println(titleStyle.Render(fmt.Sprintf("==> deployments: %s", app)))
	fmt.Println()

	headers := []string{"url", "state", "age", "duration"}
	if showUser {
		headers = append(headers, "username")
	}

	now := time.Now()
	rows := [][]string{}
	for i, d := range deps {
		url := d.URL
		if i == 0 {
			url = successStyle.Render("●") + " " + url
		} else {
			url = "  " + url
		}

		row := []string{
			url,
			stateCell(d.State),
			deployments.Age(now, d),
			deployments.Duration(d),
		}
		if showUser {
			row = append(row, d.Creator.Username)
		}
		rows = append(rows, row)
	}

	printTable(headers, rows)
}

// renderLatestDeployments prints one row per project.
func renderLatestDeployments(deps []models.Deployment) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("==> deployments (%d)", len(deps))))
	fmt.Println()

	now := time.Now()
	rows := [][]string{}
	for _, d := range deps {
		rows = append(rows, []string{
			d.Name,
			utils.TruncateString(d.URL, 60),
			stateCell(d.State),
			deployments.Age(now, d),
		})
	}

	printTable([]string{"project", "latest deployment", "state", "age"}, rows)
}

func printTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().
					Foreground(lipgloss.Color("86")).
					Bold(true).
					Align(lipgloss.Center)
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Println(t)
	fmt.Println()
}

func stateCell(state models.DeploymentState) string {
	switch state {
	case models.DeploymentStateInitializing, models.DeploymentStateBuilding:
		return progressStyle.Render("●") + " " + string(state)
	case models.DeploymentStateError:
		return errorStyle.Render("●") + " " + string(state)
	case models.DeploymentStateReady:
		return successStyle.Render("●") + " " + string(state)
	case models.DeploymentStateQueued:
		return dimStyle.Render("●") + " " + string(state)
	case models.DeploymentStateCanceled:
		return string(state)
	default:
		return string(models.DeploymentStateUnknown)
	}
}

// nextPageCommand rebuilds the invocation with the pagination cursor so
// the hint can be copied straight back into the shell.
func nextPageCommand(appArg string, next int64) string {
	parts := []string{"strato", "ls"}
	if appArg != "" {
		parts = append(parts, appArg)
	}
	if lsAll {
		parts = append(parts, "--all")
	}
	for _, pair := range lsMeta {
		parts = append(parts, "-m", pair)
	}
	parts = append(parts, "-N", strconv.FormatInt(next, 10))
	return strings.Join(parts, " ")
}
