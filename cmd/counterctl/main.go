package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	pkgGrpc "github.com/vogiaan1904/ticketbottle-counters/pkg/grpc"
)

type clientFactory func(addr string) (counterapi.CounterServiceClient, func(), error)

type cliConfig struct {
	v         *viper.Viper
	newClient clientFactory
}

// call dials the server and runs fn with a timeout-bound context.
func (c *cliConfig) call(cmd *cobra.Command, fn func(ctx context.Context, cli counterapi.CounterServiceClient) error) error {
	cli, cleanup, err := c.newClient(c.v.GetString("addr"))
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.v.GetDuration("timeout"))
	defer cancel()

	return fn(ctx, cli)
}

func newRootCommand(newClient clientFactory) *cobra.Command {
	cfg := &cliConfig{v: viper.New(), newClient: newClient}

	root := &cobra.Command{
		Use:           "counterctl",
		Short:         "Operate the counters service from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("addr", "localhost:50056", "counters gRPC address")
	flags.Duration("timeout", 5*time.Second, "per-command deadline")
	flags.Bool("no-color", false, "disable coloured output")

	for _, name := range []string{"addr", "timeout", "no-color"} {
		if err := cfg.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	cfg.v.SetEnvPrefix("COUNTERCTL")
	cfg.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.v.AutomaticEnv()

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setColor(!cfg.v.GetBool("no-color"))
	}

	root.AddCommand(
		newSectionsCommand(cfg),
		newRequestCommand(cfg),
		newCallCommand(cfg),
		newQueueCommand(cfg),
		newLastCalledCommand(cfg),
		newWaitTimesCommand(cfg),
		newStatusCommand(cfg),
		newClearCommand(cfg),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	newClient := func(addr string) (counterapi.CounterServiceClient, func(), error) {
		cli, cleanup, err := pkgGrpc.NewCounterClient(addr)
		return cli, cleanup, err
	}

	if err := newRootCommand(newClient).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}
