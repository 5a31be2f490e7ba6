package client

import (
	"context"

	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

// AppendSimulation merges sim into the loaded simulation and uploads the
// result. Pairs of sim replace loaded pairs with the same request matcher.
//
// The read-merge-write is not atomic; concurrent writers can lose updates.
func (c *Client) AppendSimulation(ctx context.Context, sim *simulation.Simulation) (*simulation.Simulation, error) {
	current, err := c.GetSimulation(ctx)
	if err != nil {
		return nil, err
	}
	return c.UploadSimulation(ctx, simulation.Merge(current, sim))
}

// WithSimulation appends sim, runs fn and then uploads the simulation that
// was loaded before the call.
//
// Restoration only happens when fn returns nil. If fn fails or panics, the
// merged simulation stays loaded and fn's error is returned.
func (c *Client) WithSimulation(ctx context.Context, sim *simulation.Simulation, fn func() error) error {
	original, err := c.GetSimulation(ctx)
	if err != nil {
		return err
	}
	if _, err := c.UploadSimulation(ctx, simulation.Merge(original, sim)); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	_, err = c.UploadSimulation(ctx, original)
	return err
}
