package orchestrator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Control inputs recognized by the interactive loop.
const (
	cmdExit    = "exit"
	cmdQuit    = "quit"
	cmdRefresh = "refresh"
)

// RunLoop reads queries line by line from r and writes answers to w, one
// query at a time to completion. "exit" and "quit" end the loop, "refresh"
// re-runs discovery, empty lines are ignored, everything else is a query.
// The loop survives every per-query failure; only a closed input or a
// cancelled context stops it.
func (o *Orchestrator) RunLoop(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(w, "You: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		switch strings.ToLower(query) {
		case cmdExit, cmdQuit:
			fmt.Fprintln(w, "Goodbye!")
			return nil
		case cmdRefresh:
			count := o.Refresh(ctx)
			if count == 0 {
				fmt.Fprintln(w, "No agents found during refresh.")
			} else {
				fmt.Fprintf(w, "Refreshed registry: %d agents available.\n", count)
			}
			continue
		}

		answer := o.Handle(ctx, query)
		fmt.Fprintf(w, "Assistant: %s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	fmt.Fprintln(w, "Goodbye!")
	return nil
}
