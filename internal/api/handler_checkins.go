package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-admin-backend/internal/report"
	"gym-admin-backend/internal/store"
)

type createCheckinRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// CreateCheckin handles POST /api/branches/{branch_id}/checkins. The store
// snapshots the client's current name onto the event and stamps the
// timestamp; the snapshot never updates afterwards.
func (h *Handler) CreateCheckin(c *gin.Context) {
	branch := h.branch(c.Param("branch_id"))
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
		return
	}

	var req createCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.store.GetClient(c.Request.Context(), req.ClientID)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client"})
		return
	}

	checkin, err := h.store.CreateCheckin(c.Request.Context(), client.ID, client.Name, branch.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to record check-in"})
		return
	}

	c.JSON(http.StatusCreated, checkin)
}

// GetCheckins handles GET /api/branches/{branch_id}/checkins?period=...
// listing a branch's check-ins inside the reporting window.
func (h *Handler) GetCheckins(c *gin.Context) {
	branch := h.branch(c.Param("branch_id"))
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
		return
	}

	from, to, err := report.Window(c.Query("period"), h.now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkins, err := h.store.ListCheckins(c.Request.Context(), branch.ID, from, to)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve check-ins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(checkins),
		"checkins": checkins,
	})
}
