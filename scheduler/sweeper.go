// Package scheduler runs the periodic maintenance jobs around the booking
// engine.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// Start wires the cron jobs and starts the scheduler. Currently one job:
// auto-cancel reservations stuck in PendingApproval past the policy TTL.
// Returns the cron handle so main can stop it on shutdown.
func Start(bookingSvc *services.BookingService) *cron.Cron {
	c := cron.New()

	spec := utils.EnvOrDefault("SWEEPER_CRON", "@every 15m")
	if _, err := c.AddFunc(spec, func() {
		expired, err := bookingSvc.ExpireStalePending()
		if err != nil {
			log.Printf("sweeper: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("sweeper: expired %d stale pending reservation(s)", expired)
		}
	}); err != nil {
		log.Printf("sweeper: failed to schedule: %v", err)
		return c
	}

	c.Start()
	log.Printf("sweeper scheduled (%s)", spec)
	return c
}
