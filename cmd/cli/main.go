package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/pintwise/internal/adapter/http/dto"
)

const (
	defaultURL     = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

// app carries the state shared by all commands.
type app struct {
	baseURL    string
	timeout    time.Duration
	configPath string
	jsonOut    bool

	client  *apiClient
	confirm func(title string) (bool, error)
}

func main() {
	a := &app{confirm: huhConfirm}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pintwise",
		Short:        "Pintwise CLI tool",
		Long:         `A command line interface for keeping track of who owes whom a pint.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "url", defaultURL, "Base URL of the Pintwise API")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", defaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $HOME/"+defaultConfigName+")")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		a.addCmd(),
		a.pendingCmd(),
		a.historyCmd(),
		a.searchCmd(),
		a.balancesCmd(),
		a.statsCmd(),
		a.payCmd(),
		a.deleteCmd(),
	)

	return rootCmd
}

// setup applies file defaults for flags the user did not set and builds the
// API client.
func (a *app) setup(cmd *cobra.Command) error {
	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}

	fileCfg, err := loadFileConfig(path, explicit)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if fileCfg.URL != "" && !flags.Changed("url") {
		a.baseURL = fileCfg.URL
	}
	if fileCfg.Timeout > 0 && !flags.Changed("timeout") {
		a.timeout = fileCfg.Timeout
	}

	a.client = newAPIClient(a.baseURL, a.timeout)
	return nil
}

func (a *app) addCmd() *cobra.Command {
	var (
		description string
		amount      string
	)

	cmd := &cobra.Command{
		Use:   "add <debtor> <creditor>",
		Short: "Record that debtor owes creditor a pint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateEntryRequest{
				Debtor:      args[0],
				Creditor:    args[1],
				Description: description,
			}
			if amount != "" {
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				req.Amount = &d
			}

			entry, err := a.client.addEntry(cmd.Context(), req)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s owes %s %s pint(s) [%s]\n",
				okStyle.Render("Recorded:"), entry.Debtor, entry.Creditor, entry.Amount.String(), entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the pint was for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Number of pints (default 1)")

	return cmd
}

func (a *app) pendingCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Show unpaid pints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.listPending(cmd.Context(), query)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			renderPending(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show entries matching this text")

	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var status, query string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show every recorded pint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(cmd, status, query)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (all, pending, paid)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show entries matching this text")

	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find entries by name or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(cmd, status, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (all, pending, paid)")

	return cmd
}

func (a *app) list(cmd *cobra.Command, status, query string) error {
	resp, err := a.client.listEntries(cmd.Context(), status, query)
	if err != nil {
		return err
	}
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	renderHistory(cmd.OutOrStdout(), resp)
	return nil
}

func (a *app) balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show who owes whom after cancelling mutual debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.balances(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			renderBalances(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pint totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.stats(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			renderStats(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func (a *app) payCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a pint as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ok, err := a.confirmed(yes, fmt.Sprintf("Mark %s as paid?", id))
			if err != nil || !ok {
				return a.cancelled(cmd, err)
			}

			if err := a.client.pay(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Paid:"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ok, err := a.confirmed(yes, fmt.Sprintf("Delete %s? This cannot be undone.", id))
			if err != nil || !ok {
				return a.cancelled(cmd, err)
			}

			if err := a.client.delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Deleted:"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func (a *app) confirmed(skip bool, title string) (bool, error) {
	if skip {
		return true, nil
	}
	return a.confirm(title)
}

func (a *app) cancelled(cmd *cobra.Command, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Cancelled."))
	return nil
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}
