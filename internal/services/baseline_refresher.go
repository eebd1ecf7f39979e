package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
)

// BaselineRefresher periodically recomputes the all-session baseline summary
// and caches it so trend requests stay cheap as the shot history grows.
type BaselineRefresher struct {
	store     *SessionStore
	cache     *CacheService
	engine    *analytics.Engine
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	mu        sync.Mutex
	isRunning bool
}

func NewBaselineRefresher(store *SessionStore, cache *CacheService, engine *analytics.Engine, logger *logrus.Logger, interval string) *BaselineRefresher {
	return &BaselineRefresher{
		store:    store,
		cache:    cache,
		engine:   engine,
		logger:   logger,
		cron:     cron.New(),
		schedule: fmt.Sprintf("@every %s", interval),
	}
}

// Start begins the scheduled refreshes and runs one immediately.
func (r *BaselineRefresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("baseline refresher is already running")
	}

	if _, err := r.cron.AddFunc(r.schedule, r.refresh); err != nil {
		return fmt.Errorf("failed to schedule baseline refresher: %w", err)
	}

	r.cron.Start()
	r.isRunning = true

	go r.refresh()

	r.logger.WithField("schedule", r.schedule).Info("Baseline refresher started")
	return nil
}

// Stop halts the scheduled refreshes.
func (r *BaselineRefresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()

	r.isRunning = false
	r.logger.Info("Baseline refresher stopped")
}

func (r *BaselineRefresher) refresh() {
	shots, sessions, err := r.store.GetBaselineShots(uuid.Nil)
	if err != nil {
		r.logger.WithError(err).Error("Baseline refresh failed to load shots")
		return
	}
	if sessions == 0 {
		return
	}

	summary := r.engine.Summarize(shots)
	if err := r.cache.SetWithRetry(context.Background(), BaselineCacheKey(), summary, 0, 3); err != nil {
		r.logger.WithError(err).Warn("Baseline refresh failed to cache summary")
		return
	}
	r.logger.WithFields(logrus.Fields{
		"sessions": sessions,
		"shots":    len(shots),
	}).Debug("Baseline summary refreshed")
}
