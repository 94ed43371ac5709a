package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/config"
	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/bizzul/santini-manager-sub003/internal/metrics"
	"github.com/bizzul/santini-manager-sub003/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService fetches the named task/event subsets and hands them
// to the metrics engine. The engine itself is pure; this service owns
// everything impure around it: queries, the wall clock, the goal
// configuration, and a small per-site result cache shared between the
// request path and the background warmer.
type DashboardService struct {
	taskRepo   *repository.TaskRepository
	actionRepo *repository.ActionRepository
	cfg        *config.DashboardConfig
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[domain.SiteID]cacheEntry
}

type cacheEntry struct {
	metrics    *domain.DashboardMetrics
	computedAt time.Time
}

func NewDashboardService(
	taskRepo *repository.TaskRepository,
	actionRepo *repository.ActionRepository,
	cfg *config.DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		taskRepo:   taskRepo,
		actionRepo: actionRepo,
		cfg:        cfg,
		logger:     logger,
		cache:      make(map[domain.SiteID]cacheEntry),
	}
}

// GetMetrics returns the dashboard for the site scope on the context.
// A zero `at` means "now" and may be served from the cache; an explicit
// reference date always recomputes, so historical renders stay exact.
func (s *DashboardService) GetMetrics(ctx context.Context, at time.Time) (*domain.DashboardMetrics, error) {
	cacheable := at.IsZero()
	if cacheable {
		at = time.Now()
	}

	key := cacheKey(ctx)
	if cacheable {
		if cached, ok := s.fromCache(key); ok {
			return cached, nil
		}
	}

	result, err := s.compute(ctx, at)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.store(key, result)
	}
	return result, nil
}

// Refresh recomputes the dashboard for the current site scope and
// stores it, regardless of cache freshness. Used by the cache warmer.
func (s *DashboardService) Refresh(ctx context.Context) error {
	result, err := s.compute(ctx, time.Now())
	if err != nil {
		return err
	}
	s.store(cacheKey(ctx), result)
	return nil
}

// compute runs one full assembly against a fixed reference date
func (s *DashboardService) compute(ctx context.Context, at time.Time) (*domain.DashboardMetrics, error) {
	target, err := decimal.NewFromString(s.cfg.WeeklyValueTarget)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadGoalConfig, s.cfg.WeeklyValueTarget)
	}

	clock := metrics.NewReferenceClock(at)

	fromYear, _ := metrics.YearWindow(clock)
	windowStart := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, at.Location())
	month := metrics.MonthOf(at)

	active, err := s.taskRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active tasks: %w", err)
	}
	stocked, err := s.taskRepo.GetStocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stocked tasks: %w", err)
	}
	done, err := s.taskRepo.GetDoneSince(ctx, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch done tasks: %w", err)
	}
	events, err := s.actionRepo.GetMoveEventsBetween(ctx, month.Start, month.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch move events: %w", err)
	}

	result, err := metrics.Assemble(
		metrics.Inputs{
			Active:       active,
			Stocked:      stocked,
			DoneInWindow: done,
			Events:       events,
		},
		clock,
		metrics.Config{
			WeeklyValueTarget: target,
			FoldLabel:         s.cfg.FoldLabel,
			FoldProducts:      s.cfg.FoldProducts,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard assembly failed: %w", err)
	}

	if result.SkippedRecords > 0 {
		s.logger.Warn("dashboard computed with skipped records",
			zap.Int("skipped", result.SkippedRecords),
			zap.Time("reference_date", at),
		)
	}
	return result, nil
}

func (s *DashboardService) fromCache(key domain.SiteID) (*domain.DashboardMetrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[key]
	if !ok || time.Since(entry.computedAt) > s.cfg.CacheTTLDuration() {
		return nil, false
	}
	return entry.metrics, true
}

func (s *DashboardService) store(key domain.SiteID, m *domain.DashboardMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{metrics: m, computedAt: time.Now()}
}

// cacheKey derives the cache key from the request's site scope. The
// all-sites view caches under the empty key.
func cacheKey(ctx context.Context) domain.SiteID {
	if siteID := auth.GetEffectiveSiteFilter(ctx); siteID != nil {
		return *siteID
	}
	return ""
}
