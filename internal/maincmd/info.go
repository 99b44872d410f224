package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/pyrename/rename"
)

func (c *Cmd) Info(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path, target := args[0], args[1]

	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, err)
	}

	result, err := rename.BindingInfo(string(src), target)
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", path, err))
	}

	for _, b := range result.Bindings {
		fmt.Fprintf(stdio.Stdout, "%s %q (scope %d): %d def(s), %d use(s)\n",
			b.ScopeKind, b.ScopeName, b.ScopeID, b.Defs, b.Uses)
	}
	fmt.Fprintf(stdio.Stdout, "total: %d def(s), %d use(s) across %d binding(s)\n",
		result.TotalDefs, result.TotalUses, len(result.Bindings))
	return nil
}
