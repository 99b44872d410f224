// Package maincmd implements the pyrename command-line dispatcher: it parses
// flags, picks a subcommand by reflection the same way the teacher's own
// CLI scaffolding does, and hands off to one handler method per subcommand.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "pyrename"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> <file> <name> [<new-name>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <file> <name> [<new-name>]
       %[1]s -h|--help
       %[1]s -v|--version

Scope-aware symbol renamer for Python source files.

The <command> can be one of:
       rename                    Rename every binding named <name> that
                                 matches the selection rules to <new-name>
                                 and print the rewritten source.
       info                      Print every distinct binding named <name>,
                                 its scope, and its use/definition counts.
       safety                    Check whether renaming <name> to
                                 <new-name> looks safe and print any
                                 advisory issues.
       summarize                 Print a structural listing of functions,
                                 classes, assignments and imports in <file>.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --scope=<filter>          Restrict selection to "local", "class",
                                 "global" or "nonlocal" bindings (rename,
                                 safety).
       --target-functions=<list> Comma-separated list of function names the
                                 selected binding's scope must be contained
                                 in (rename, safety).
       --dry-run                 Render a unified diff instead of printing
                                 the rewritten source (rename).
       --debug                   Log selection and rewrite decisions to
                                 stderr.

More information on the pyrename project:
       https://github.com/mna/pyrename
`, binName)
)

// Cmd is the root pyrename command, dispatched to a subcommand method by
// buildCmds below — the same reflection-based pattern the teacher's own
// internal/maincmd.Cmd uses.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Scope           string `flag:"scope"`
	TargetFunctions string `flag:"target-functions"`
	DryRun          bool   `flag:"dry-run"`
	Debug           bool   `flag:"debug"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	rest := c.args[1:]
	switch cmdName {
	case "rename":
		if len(rest) < 3 {
			return fmt.Errorf("%s: requires <file> <name> <new-name>", cmdName)
		}
	case "info", "safety", "summarize":
		if len(rest) < 2 && cmdName != "summarize" {
			return fmt.Errorf("%s: requires <file> <name>", cmdName)
		}
		if cmdName == "summarize" && len(rest) < 1 {
			return fmt.Errorf("%s: requires <file>", cmdName)
		}
		if cmdName == "safety" && len(rest) < 3 {
			return fmt.Errorf("%s: requires <file> <name> <new-name>", cmdName)
		}
	}

	if c.flags["dry-run"] && cmdName != "rename" {
		return fmt.Errorf("%s: invalid flag 'dry-run'", cmdName)
	}
	if c.flags["scope"] && cmdName != "rename" && cmdName != "safety" {
		return fmt.Errorf("%s: invalid flag 'scope'", cmdName)
	}
	if c.flags["target-functions"] && cmdName != "rename" && cmdName != "safety" {
		return fmt.Errorf("%s: invalid flag 'target-functions'", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) targetFunctions() []string {
	if c.TargetFunctions == "" {
		return nil
	}
	parts := strings.Split(c.TargetFunctions, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// buildCmds scans v's methods for the signature func(context.Context,
// mainer.Stdio, []string) error and maps each one's lowercased name to a
// subcommand, exactly as the teacher's own maincmd package does.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
