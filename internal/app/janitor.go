package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/pkg/logger"
)

// CacheJanitor sweeps expired entries out of the entity cache on a cron
// schedule so idle entries do not linger until their next lookup, and
// optionally re-warms the default catalog page afterwards.
type CacheJanitor struct {
	cache    *entitycache.Cache
	schedule string
	warm     func(context.Context) error
	log      *logger.Logger
	cron     *cron.Cron
}

// NewCacheJanitor creates a janitor. The schedule uses cron syntax,
// including descriptors like "@every 1m". warm may be nil.
func NewCacheJanitor(cache *entitycache.Cache, schedule string, warm func(context.Context) error, log *logger.Logger) *CacheJanitor {
	if log == nil {
		log = logger.NewDefault("cache.janitor")
	}
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &CacheJanitor{cache: cache, schedule: schedule, warm: warm, log: log}
}

// Name implements system.Service.
func (j *CacheJanitor) Name() string { return "cache-janitor" }

// Start schedules the sweep.
func (j *CacheJanitor) Start(context.Context) error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *CacheJanitor) Stop(ctx context.Context) error {
	if j.cron == nil {
		return nil
	}
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (j *CacheJanitor) sweep() {
	if n := j.cache.CleanExpired(); n > 0 {
		j.log.WithField("cleaned", n).Debug("swept expired cache entries")
	}
	if j.warm == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := j.warm(ctx); err != nil {
		j.log.WithError(err).Debug("cache warm-up failed")
	}
}
