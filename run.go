package labelcue

import (
	"context"
	"fmt"
)

// Run starts t and feeds every line it yields into g until the transport
// closes its channel or ctx is canceled. Lines are handled one at a time on
// the calling goroutine.
func Run(ctx context.Context, t Transport, g *Gate) error {
	lines, err := t.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting %s transport: %w", t.Kind(), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			g.OnReceive(line)
		}
	}
}
