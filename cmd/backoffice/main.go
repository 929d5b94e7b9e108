package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikelcalvo/backoffice-cli/internal/erp"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// session is what every command that talks to the ERP needs.
type session struct {
	client *erp.Client
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}

func openSession() (*session, error) {
	config, err := erp.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, closer, err := erp.NewLogger(config)
	if err != nil {
		return nil, err
	}
	return &session{client: erp.NewClient(config, logger), closer: closer}, nil
}

// withClient loads the config, opens the log and runs fn with a bounded
// context. detect probes VPN vs internet first.
func withClient(detect bool, fn func(ctx context.Context, c *erp.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := s.client.WithTimeout(cmd.Context())
		defer cancel()

		if detect {
			s.client.DetectConnection(ctx)
		}
		return fn(ctx, s.client)
	}
}

var startFlags struct {
	customer string
	budget   string
	mode     string
}

func runTUI(*cobra.Command, []string) error {
	start, err := erp.ParseStart(startFlags.customer, startFlags.budget, startFlags.mode)
	if err != nil {
		return err
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return erp.RunTUI(s.client, start)
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startFlags.customer, "customer", "", "open the customer form for this id (\"new\" to create)")
	cmd.Flags().StringVar(&startFlags.budget, "budget", "", "open the budget form for this id (\"new\" to create)")
	cmd.Flags().StringVar(&startFlags.mode, "mode", string(form.ModeDetail), "form mode: create, edit or detail")
}

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive interface",
		RunE:  runTUI,
	}
	addStartFlags(cmd)
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Customers and budgets back-office",
		Long: `Back-office CLI for customers and budgets.

Without a command it opens the interactive interface. Configuration is
read from .erp-config; BACKOFFICE_<KEY> environment variables override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	addStartFlags(rootCmd)

	rootCmd.AddCommand(
		tuiCmd(),
		&cobra.Command{
			Use:   "ping",
			Short: "Test connection and authentication",
			RunE: withClient(false, func(ctx context.Context, c *erp.Client) error {
				return c.CmdPing(ctx)
			}),
		},
		&cobra.Command{
			Use:   "config",
			Short: "Show current configuration",
			RunE: withClient(false, func(ctx context.Context, c *erp.Client) error {
				return c.CmdConfig(ctx)
			}),
		},
		versionCmd(),
		customerCmd(),
		budgetCmd(),
		stockCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%sError: %s%s\n", erp.Red, err, erp.Reset)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("Back-office CLI v%s\n", erp.Version)
			fmt.Printf("Created by %s in %s\n", erp.Author, erp.Year)
		},
	}
}

func customerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "List, inspect and delete customers",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all customers",
			RunE: withClient(true, func(ctx context.Context, c *erp.Client) error {
				return c.CmdCustomerList(ctx)
			}),
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a customer and its open debits",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(true, func(ctx context.Context, c *erp.Client) error {
					return c.CmdCustomerGet(ctx, args[0])
				})(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a customer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(true, func(ctx context.Context, c *erp.Client) error {
					return c.CmdCustomerDelete(ctx, args[0])
				})(cmd, args)
			},
		},
	)
	return cmd
}

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "List and inspect budgets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all budgets",
			RunE: withClient(true, func(ctx context.Context, c *erp.Client) error {
				return c.CmdBudgetList(ctx)
			}),
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a budget",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(true, func(ctx context.Context, c *erp.Client) error {
					return c.CmdBudgetGet(ctx, args[0])
				})(cmd, args)
			},
		},
	)
	return cmd
}

func stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Products available for sale",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List products in stock",
		RunE: withClient(true, func(ctx context.Context, c *erp.Client) error {
			return c.CmdStockList(ctx)
		}),
	})
	return cmd
}
