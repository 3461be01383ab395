package main

import (
	"context"
	"log"

	"github.com/vv-pms/pms-backend/config"
	"github.com/vv-pms/pms-backend/internal/bootstrap"
	"github.com/vv-pms/pms-backend/internal/timegrid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenSQL(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	pool, err := bootstrap.OpenPool(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	deps := bootstrap.RouterDeps{
		ServiceName: "pms-backend",
		Version:     cfg.App.Version,
		DB:          db,
		HealthPool:  pool,
		Redis:       rdb,
		Grid: timegrid.Config{
			Days:         cfg.Scheduler.Days,
			Bins:         cfg.Scheduler.Bins,
			BinMinutes:   cfg.Scheduler.BinMinutes,
			DayStartHour: cfg.Scheduler.DayStartHour,
			DurationBins: cfg.Scheduler.DurationBins,
		},
		RateRPS:   cfg.Server.RateRPS,
		RateBurst: cfg.Server.RateBurst,
	}

	svcs := bootstrap.BuildServices(deps)
	router := bootstrap.BuildRouter(deps, svcs)

	if c := bootstrap.StartBestEffortCron(cfg.Scheduler.BestEffortCron, svcs); c != nil {
		defer c.Stop()
	}

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
