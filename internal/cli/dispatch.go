// Package cli mounts the registered commands on a cobra command tree and maps
// their outcomes to process exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	apiURL    string
	quiet     bool
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	code := exitcode.Success
	root := d.newRoot(out, errOut, &code)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	return code
}

// newRoot builds a fresh command tree. Commands keep their flag values in
// their own structs, so each Run re-registers flags to reset them.
func (d *Dispatcher) newRoot(out, errOut io.Writer, code *int) *cobra.Command {
	var common commonFlags

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Command-line client for a REST task list",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&common.configDir, "config", "", "override config directory")
	pf.StringVar(&common.apiURL, "api-url", "", "override the task API base URL")
	pf.BoolVar(&common.quiet, "quiet", false, "suppress informational output")
	pf.BoolVar(&common.debug, "debug", false, "print debug logs to stderr")

	// No command runs list with default flags.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		list, ok := d.registry.Find("list")
		if !ok {
			return errors.New("unknown command: list")
		}
		list.RegisterFlags(pflag.NewFlagSet(list.Name(), pflag.ContinueOnError))
		*code = d.dispatchCommand(cmd.Context(), list, common, nil, out, errOut)
		return nil
	}

	for _, c := range d.registry.All() {
		sub := d.mount(c, &common, out, errOut, code)
		if c.Name() == "help" {
			root.SetHelpCommand(sub)
			root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
				*code = c.Run(cmd.Context(), config.New(common.configDir), nil, nil, out, errOut)
			})
			continue
		}
		root.AddCommand(sub)
	}
	return root
}

// mount wraps a registered command in a cobra command.
func (d *Dispatcher) mount(c commands.Command, common *commonFlags, out, errOut io.Writer, code *int) *cobra.Command {
	sub := &cobra.Command{
		Use:     c.Name(),
		Aliases: c.Aliases(),
		Short:   c.Synopsis(),
		Long:    c.Usage(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = d.dispatchCommand(cmd.Context(), c, *common, args, out, errOut)
			return nil
		},
	}
	c.RegisterFlags(sub.Flags())
	return sub
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, common commonFlags, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load(common.configDir)
	switch {
	case err != nil && !cmd.NeedsService():
		// help and version work with a broken config file.
		cfg = config.New(common.configDir)
	case err != nil:
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	if common.apiURL != "" {
		if err := cfg.SetAPIURL(common.apiURL); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.ConfigError
		}
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	var svc service.Service
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no task backend configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, svc, args, out, errOut)
}
