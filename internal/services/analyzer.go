package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
)

// SessionAnalysis is the complete serializable analysis document for one
// session. It is what the presentation layer (or a downstream summary
// generator) consumes.
type SessionAnalysis struct {
	SessionID       uuid.UUID                `json:"session_id"`
	SessionName     string                   `json:"session_name"`
	IncludeOutliers bool                     `json:"include_outliers"`
	Summary         analytics.SessionSummary `json:"summary"`
	Ladder          analytics.GappingLadder  `json:"gapping_ladder"`
	Coach           *analytics.CoachPlan     `json:"coach_plan"`
	Trends          *analytics.TrendDeltas   `json:"trend_deltas"`
	Insights        []analytics.RuleInsight  `json:"rule_insights"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// Analyzer orchestrates the analytics pipeline over stored sessions: load
// shots, run the engine, aggregate the baseline, attach drill history, cache
// the result.
type Analyzer struct {
	store    *SessionStore
	cache    *CacheService
	engine   *analytics.Engine
	logger   *logrus.Logger
	cacheTTL time.Duration
}

func NewAnalyzer(store *SessionStore, cache *CacheService, engine *analytics.Engine, logger *logrus.Logger, cacheTTL time.Duration) *Analyzer {
	return &Analyzer{
		store:    store,
		cache:    cache,
		engine:   engine,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Analyze runs the full pipeline for one stored session. includeOutliers
// keeps or filters tagged outliers before summarizing; tagging itself never
// removes shots.
func (a *Analyzer) Analyze(ctx context.Context, sessionID uuid.UUID, includeOutliers bool) (*SessionAnalysis, error) {
	cacheKey := AnalysisCacheKey(sessionID, includeOutliers)
	var cached SessionAnalysis
	if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
		a.logger.WithField("session_id", sessionID).Debug("Analysis served from cache")
		return &cached, nil
	}

	session, err := a.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	shots, err := a.store.GetSessionShots(sessionID)
	if err != nil {
		return nil, err
	}

	analyzed := shots
	if !includeOutliers {
		analyzed = make([]analytics.ShotRecord, 0, len(shots))
		for _, s := range shots {
			if !s.IsOutlier {
				analyzed = append(analyzed, s)
			}
		}
	}

	summary := a.engine.Summarize(analyzed)
	ladder := a.engine.BuildLadder(summary)

	baselineShots, baselineSessions, err := a.store.GetBaselineShots(sessionID)
	if err != nil {
		return nil, err
	}
	sessionsAnalyzed := baselineSessions + 1

	var baseline *analytics.SessionSummary
	if baselineSessions > 0 {
		b := a.engine.Summarize(baselineShots)
		baseline = &b
	}

	coach := a.engine.BuildCoachPlan(summary, ladder, sessionsAnalyzed)
	trends := a.engine.ComputeTrendDeltas(summary, sessionsAnalyzed, baseline, baselineSessions)

	logs, err := a.store.ListDrillLogs("")
	if err != nil {
		return nil, err
	}
	drillLogs := make([]analytics.DrillLog, 0, len(logs))
	for _, log := range logs {
		drillLogs = append(drillLogs, log.ToAnalytics())
	}

	insights := a.engine.EvaluateRules(analyzed, summary, ladder, coach, drillLogs)

	result := &SessionAnalysis{
		SessionID:       session.ID,
		SessionName:     session.Name,
		IncludeOutliers: includeOutliers,
		Summary:         summary,
		Ladder:          ladder,
		Coach:           coach,
		Trends:          trends,
		Insights:        insights,
		GeneratedAt:     time.Now().UTC(),
	}

	if err := a.cache.Set(ctx, cacheKey, result, a.cacheTTL); err != nil {
		a.logger.WithError(err).Warn("Failed to cache analysis")
	}
	return result, nil
}

// Invalidate drops cached analyses after imports or drill-log writes.
func (a *Analyzer) Invalidate(ctx context.Context) {
	if err := a.cache.DeletePattern(ctx, "analysis:*"); err != nil {
		a.logger.WithError(err).Warn("Failed to invalidate analysis cache")
	}
	if err := a.cache.Delete(ctx, BaselineCacheKey()); err != nil {
		a.logger.WithError(err).Warn("Failed to invalidate baseline cache")
	}
}
