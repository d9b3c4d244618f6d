package client

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Dashboard is the front-desk overview, assembled from several endpoints.
type Dashboard struct {
	ActiveMemberships    int64
	ActiveClasses        int64
	UpcomingSessions     int
	OverduePayments      int
	EquipmentMaintenance int
}

// Dashboard fans out the stat calls in parallel and merges the results.
// Any failing call fails the whole aggregate.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		count, err := c.Memberships.CountActive(ctx)
		d.ActiveMemberships = count
		return err
	})
	p.Go(func(ctx context.Context) error {
		count, err := c.GymClasses.CountActive(ctx)
		d.ActiveClasses = count
		return err
	})
	p.Go(func(ctx context.Context) error {
		sessions, err := c.TrainingSessions.ListUpcoming(ctx)
		d.UpcomingSessions = len(sessions)
		return err
	})
	p.Go(func(ctx context.Context) error {
		payments, err := c.Payments.ListOverdue(ctx)
		d.OverduePayments = len(payments)
		return err
	})
	p.Go(func(ctx context.Context) error {
		equipment, err := c.Equipment.ListNeedingMaintenance(ctx)
		d.EquipmentMaintenance = len(equipment)
		return err
	})

	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
