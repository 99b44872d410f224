package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/pyrename/rename"
)

func (c *Cmd) Summarize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]

	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, err)
	}

	sum, err := rename.Summarize(string(src))
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", path, err))
	}

	for _, imp := range sum.Imports {
		if imp.Module != "" {
			fmt.Fprintf(stdio.Stdout, "%d: from %s import %v\n", imp.Line, imp.Module, imp.Names)
		} else {
			fmt.Fprintf(stdio.Stdout, "%d: import %v\n", imp.Line, imp.Names)
		}
	}
	for _, cls := range sum.Classes {
		fmt.Fprintf(stdio.Stdout, "%d: class %s\n", cls.Line, cls.Name)
		if cls.Docstring != "" {
			fmt.Fprintf(stdio.Stdout, "    %s\n", cls.Docstring)
		}
	}
	for _, fn := range sum.Functions {
		prefix := "def"
		if fn.Async {
			prefix = "async def"
		}
		fmt.Fprintf(stdio.Stdout, "%d: %s %s\n", fn.Line, prefix, fn.Name)
		if fn.Docstring != "" {
			fmt.Fprintf(stdio.Stdout, "    %s\n", fn.Docstring)
		}
	}
	for _, a := range sum.Assignments {
		fmt.Fprintf(stdio.Stdout, "%d: assign %v\n", a.Line, a.Targets)
	}
	return nil
}
