package jobs

import (
	"context"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"go.uber.org/zap"
)

// MetricsRefreshJobName is the name of the dashboard cache warmer job
const MetricsRefreshJobName = "metrics_refresh"

// DefaultRefreshTimeout bounds one full warm cycle across all sites
const DefaultRefreshTimeout = 2 * time.Minute

// MetricsRefresher recomputes and stores the dashboard for the site
// scope carried on the context.
type MetricsRefresher interface {
	Refresh(ctx context.Context) error
}

// SiteLister enumerates the sites whose caches should be kept warm.
type SiteLister interface {
	ListActive(ctx context.Context) ([]domain.Site, error)
}

// MetricsRefreshJob warms the per-site dashboard cache. It recomputes
// each active site's dashboard plus the cross-site view, so the next
// request on any scope is a cache hit.
type MetricsRefreshJob struct {
	dashboards MetricsRefresher
	sites      SiteLister
	logger     *zap.Logger
	timeout    time.Duration
}

func NewMetricsRefreshJob(dashboards MetricsRefresher, sites SiteLister, logger *zap.Logger, timeout time.Duration) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		dashboards: dashboards,
		sites:      sites,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes one warm cycle. Called by the scheduler.
func (j *MetricsRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	sites, err := j.sites.ListActive(ctx)
	if err != nil {
		j.logger.Error("metrics refresh failed to list sites", zap.Error(err))
		return
	}

	refreshed, failed := 0, 0
	for _, site := range sites {
		siteCtx := scopedContext(ctx, &site.ID)
		if err := j.dashboards.Refresh(siteCtx); err != nil {
			failed++
			j.logger.Error("metrics refresh failed for site",
				zap.String("site_id", string(site.ID)),
				zap.Error(err))
			continue
		}
		refreshed++
	}

	// Cross-site view used by superadmins
	if err := j.dashboards.Refresh(scopedContext(ctx, nil)); err != nil {
		failed++
		j.logger.Error("metrics refresh failed for all-sites view", zap.Error(err))
	} else {
		refreshed++
	}

	j.logger.Info("metrics refresh completed",
		zap.Int("refreshed", refreshed),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// scopedContext builds the site scope a background refresh runs under.
// There is no authenticated user here, so the scope is set directly.
func scopedContext(ctx context.Context, siteID *domain.SiteID) context.Context {
	return auth.WithSiteFilter(ctx, &auth.SiteFilter{SiteID: siteID})
}
