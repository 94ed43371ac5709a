package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/bizzul/santini-manager-sub003/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

type metricsQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

// referenceDate parses the optional ?date= override. A zero return
// means "use the current time", which keeps the response cacheable.
func (h *DashboardHandler) referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	q := metricsQuery{Date: r.URL.Query().Get("date")}
	if err := validate.Struct(q); err != nil {
		respondValidationError(w, err)
		return time.Time{}, false
	}
	if q.Date == "" {
		return time.Time{}, true
	}
	at, err := time.ParseInLocation("2006-01-02", q.Date, time.Local)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date: must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return at, true
}

// @Summary Get dashboard metrics
// @Description Returns the full dashboard: production snapshot, weekly throughput for the current month and the five-year annual trend.
// @Description
// @Description **Production:** counts and sell values over orders currently in production, with sub-order groups counted once.
// @Description
// @Description **Weekly:** pieces moved and production value per Monday-to-Friday week of the reference month, against the weekly value target.
// @Description
// @Description **Annual:** orders and pieces per product per delivery year, for the current year and the four before it.
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date override (YYYY-MM-DD); defaults to today"
// @Param site_id query string false "Restrict to a single site (superadmin only)"
// @Success 200 {object} domain.DashboardMetrics
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	at, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	metrics, err := h.dashboardService.GetMetrics(r.Context(), at)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// @Summary Get production snapshot
// @Description Returns only the current production section of the dashboard.
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date override (YYYY-MM-DD); defaults to today"
// @Param site_id query string false "Restrict to a single site (superadmin only)"
// @Success 200 {object} domain.ProductionSnapshot
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/production [get]
func (h *DashboardHandler) GetProduction(w http.ResponseWriter, r *http.Request) {
	at, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	metrics, err := h.dashboardService.GetMetrics(r.Context(), at)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics.Production)
}

// @Summary Get weekly throughput
// @Description Returns the per-week throughput of the reference month.
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date override (YYYY-MM-DD); defaults to today"
// @Param site_id query string false "Restrict to a single site (superadmin only)"
// @Success 200 {object} domain.WeeklyThroughput
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/weekly [get]
func (h *DashboardHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	at, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	metrics, err := h.dashboardService.GetMetrics(r.Context(), at)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics.Weekly)
}

// @Summary Get annual trend
// @Description Returns orders and pieces per product per delivery year for the five-year window ending in the reference year.
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date override (YYYY-MM-DD); defaults to today"
// @Param site_id query string false "Restrict to a single site (superadmin only)"
// @Success 200 {object} domain.AnnualTrend
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/annual [get]
func (h *DashboardHandler) GetAnnual(w http.ResponseWriter, r *http.Request) {
	at, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	metrics, err := h.dashboardService.GetMetrics(r.Context(), at)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics.Annual)
}

func (h *DashboardHandler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrBadGoalConfig) {
		h.logger.Error("dashboard misconfigured", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Dashboard goal configuration is invalid")
		return
	}
	h.logger.Error("failed to get dashboard metrics", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Failed to compute dashboard metrics")
}
