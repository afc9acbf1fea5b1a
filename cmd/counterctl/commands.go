package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
)

func newSectionsCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections and how many people wait at each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.ListSections(ctx, &counterapi.ListSectionsRequest{})
				if err != nil {
					return err
				}
				printSections(cmd.OutOrStdout(), out.Sections)
				return nil
			})
		},
	}
}

func newRequestCommand(cfg *cliConfig) *cobra.Command {
	var name string
	var priority bool
	cmd := &cobra.Command{
		Use:   "request <section>",
		Short: "Request a ticket for a section (name or number)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.RequestTicket(ctx, &counterapi.RequestTicketRequest{
					Section:    args[0],
					Name:       name,
					IsPriority: priority,
				})
				if err != nil {
					return err
				}
				printIssued(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the ticket holder")
	cmd.Flags().BoolVarP(&priority, "priority", "p", false, "issue a priority ticket")
	return cmd
}

func newCallCommand(cfg *cliConfig) *cobra.Command {
	var counter string
	cmd := &cobra.Command{
		Use:   "call <section>",
		Short: "Call the next ticket of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.CallNextTicket(ctx, &counterapi.CallNextTicketRequest{Section: args[0], Counter: counter})
				if err != nil {
					return err
				}
				printCalled(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&counter, "counter", "", "counter desk calling the ticket")
	return cmd
}

func newQueueCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "queue <section>",
		Short: "Show the tickets waiting in a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.ShowQueue(ctx, &counterapi.ShowQueueRequest{Section: args[0]})
				if err != nil {
					return err
				}
				printQueue(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newLastCalledCommand(cfg *cliConfig) *cobra.Command {
	var limit int32
	cmd := &cobra.Command{
		Use:   "last-called",
		Short: "Show the most recently called tickets, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.LastCalledTickets(ctx, &counterapi.LastCalledTicketsRequest{Limit: limit})
				if err != nil {
					return err
				}
				printLastCalled(cmd.OutOrStdout(), out.Tickets)
				return nil
			})
		},
	}
	cmd.Flags().Int32VarP(&limit, "limit", "l", 10, "how many tickets to show")
	return cmd
}

func newWaitTimesCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "wait-times",
		Short: "Show the average wait position per section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.AverageWaitTimes(ctx, &counterapi.AverageWaitTimesRequest{})
				if err != nil {
					return err
				}
				printWaitTimes(cmd.OutOrStdout(), out.Sections)
				return nil
			})
		},
	}
}

func newStatusCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status <receipt>",
		Short: "Look up a ticket by the receipt handed out with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.TicketStatus(ctx, &counterapi.TicketStatusRequest{Receipt: args[0]})
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newClearCommand(cfg *cliConfig) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty every queue and reset ticket numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear all queues without --yes")
			}
			return cfg.call(cmd, func(ctx context.Context, cli counterapi.CounterServiceClient) error {
				out, err := cli.EmptyQueue(ctx, &counterapi.EmptyQueueRequest{})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing all queues")
	return cmd
}
