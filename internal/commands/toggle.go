package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	filter string
}

// SetFilter sets the filter the task number refers to (for testing).
func (c *ToggleCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between active and completed" }
func (c *ToggleCmd) Usage() string      { return "todo toggle [--filter <filter>] <ref>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	m, task, code := loadAndFind(ctx, cfg, svc, c.filter, args, errOut)
	if code != exitcode.Success {
		return code
	}

	updated, err := m.Toggle(ctx, task.ID)
	if err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s %s\n", output.Checkbox(updated.Completed), output.NormalizeText(updated.Text))
	}
	return exitcode.Success
}
