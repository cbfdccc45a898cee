package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/tui"
	"todo/internal/viewstate"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct {
	filter string
}

// SetFilter sets the initial filter (for testing).
func (c *UICmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Interactive terminal UI" }
func (c *UICmd) Usage() string      { return "todo ui [--filter <filter>]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := resolveFilter(cfg, c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// The terminal belongs to the UI, so debug logs go to a file.
	log := logging.Discard()
	if cfg.Debug {
		if err := cfg.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
			return exitcode.ConfigError
		}
		f, err := os.OpenFile(cfg.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to open debug log: %v\n", err)
			return exitcode.ConfigError
		}
		defer f.Close()
		log = logging.New(f, true)
	}

	m := viewstate.NewManager(svc, filter, log)
	if err := tui.Run(ctx, m); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
