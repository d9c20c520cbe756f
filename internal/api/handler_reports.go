package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gym-admin-backend/internal/report"
)

// reportResponse wraps the aggregated report with the window it covers.
type reportResponse struct {
	Period string `json:"period"`
	report.Report
}

// GetReport handles GET /api/branches/{branch_id}/report?period=today|week|month.
// A store failure degrades to the zero report with the failure flag set;
// the dashboard renders "no data" instead of an error screen.
func (h *Handler) GetReport(c *gin.Context) {
	branch := h.branch(c.Param("branch_id"))
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
		return
	}

	period := c.Query("period")
	now := h.now()
	from, to, err := report.Window(period, now)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if period == "" {
		period = report.PeriodToday
	}

	ctx := c.Request.Context()
	clients, err := h.store.ListClients(ctx, branch.ID)
	if err != nil {
		log.Error().Err(err).Str("branch", branch.ID).Msg("report: client fetch failed")
		c.JSON(http.StatusOK, reportResponse{Period: period, Report: report.Failed()})
		return
	}
	checkins, err := h.store.ListCheckins(ctx, branch.ID, from, to)
	if err != nil {
		log.Error().Err(err).Str("branch", branch.ID).Msg("report: checkin fetch failed")
		c.JSON(http.StatusOK, reportResponse{Period: period, Report: report.Failed()})
		return
	}

	c.JSON(http.StatusOK, reportResponse{
		Period: period,
		Report: report.Aggregate(clients, checkins, now),
	})
}
