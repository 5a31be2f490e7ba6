package hoverflytest

import (
	"context"
	"fmt"

	"github.com/bwilczek/hoverfly-client-go/pkg/client"
	"github.com/bwilczek/hoverfly-client-go/pkg/mode"
)

// Reset brings Hoverfly back to a clean state: no simulation, simulate mode,
// no middleware and an empty journal.
func Reset(ctx context.Context, c *client.Client) error {
	if err := c.PurgeSimulation(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if _, err := c.SetMode(ctx, mode.Set(mode.Simulate)); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if _, err := c.PurgeMiddleware(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := c.PurgeJournal(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
