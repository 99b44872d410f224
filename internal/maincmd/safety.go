package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/pyrename/rename"
)

func (c *Cmd) Safety(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path, target, replacement := args[0], args[1], args[2]

	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, err)
	}

	rules := rename.Rules{
		ScopeFilter:     rename.ScopeFilter(c.Scope),
		TargetFunctions: c.targetFunctions(),
	}
	ok, issues, err := rename.SafetyCheck(string(src), target, replacement, rules)
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", path, err))
	}

	for _, issue := range issues {
		fmt.Fprintf(stdio.Stdout, "warning: %s\n", issue)
	}
	if ok {
		fmt.Fprintf(stdio.Stdout, "safe: renaming %q to %q raised no issues\n", target, replacement)
		return nil
	}
	fmt.Fprintf(stdio.Stdout, "unsafe: renaming %q to %q raised %d issue(s)\n", target, replacement, len(issues))
	return nil
}
