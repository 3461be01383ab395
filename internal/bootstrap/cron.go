package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartBestEffortCron schedules the periodic best-effort passes: allocation
// fill first, then presentation scheduling. An empty spec disables the job.
// Returns the started cron so the caller can Stop it on shutdown, or nil
// when disabled.
func StartBestEffortCron(spec string, svcs *Services) *cron.Cron {
	if spec == "" {
		log.Println("best-effort cron disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		log.Println("best-effort pass started")
		if err := svcs.Allocation.RunBestEffortAllocation(ctx); err != nil {
			log.Printf("best-effort allocation: %v", err)
		}
		if err := svcs.Presentation.RunBestEffortSchedule(ctx); err != nil {
			log.Printf("best-effort scheduling: %v", err)
		}
		log.Println("best-effort pass finished")
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return nil
	}

	log.Printf("best-effort cron started (spec %q)", spec)
	c.Start()
	return c
}
