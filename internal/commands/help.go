package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todo help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                     List all tasks
  todo list [common flags] [--filter <filter>] [--format text|json|yaml]
  todo add [common flags] <text...>        Create a task (alias: create)
  todo toggle [common flags] [--filter <filter>] <ref>
                                           Flip completed (alias: done)
  todo rm [common flags] [--filter <filter>] <ref>
                                           Delete a task (alias: delete)
  todo ui [common flags]                   Interactive terminal UI
  todo help
  todo version

Filters: all, active, completed
Task references: a number from 'todo list' with the same --filter, or @<id>

Common flags:
  --config <dir>    Override config directory
  --api-url <url>   Override the task API base URL
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr

Environment:
  TODO_API_URL      Task API base URL (default http://localhost:5000/api)
`
