package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/pyrename/rename"
)

func (c *Cmd) Rename(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path, target, replacement := args[0], args[1], args[2]

	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, err)
	}

	rules := rename.Rules{
		ScopeFilter:     rename.ScopeFilter(c.Scope),
		TargetFunctions: c.targetFunctions(),
		Debug:           c.Debug,
	}

	out, diags, err := rename.Rename(string(src), target, replacement, rules)
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", path, err))
	}
	for _, d := range diags {
		fmt.Fprintf(stdio.Stderr, "%s: %s: %s\n", path, d.Kind, d.Message)
	}

	if c.DryRun {
		fmt.Fprint(stdio.Stdout, unifiedDiff(path, string(src), out))
		return nil
	}
	fmt.Fprint(stdio.Stdout, out)
	return nil
}
