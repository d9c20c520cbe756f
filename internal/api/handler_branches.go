package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-admin-backend/internal/membership"
)

// BranchResponse represents the API response for a single branch.
type BranchResponse struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Address    string                      `json:"address"`
	TermPolicy membership.TermPolicy       `json:"termPolicy"`
	Plans      []membership.Plan           `json:"plans"`
	Prices     map[membership.Plan]float64 `json:"prices"`
}

// GetBranches handles the GET /api/branches request. Branches are static
// configuration, so the response goes through the cache middleware.
func (h *Handler) GetBranches(c *gin.Context) {
	responses := make([]BranchResponse, 0, len(h.cfg.Branches))
	for _, b := range h.cfg.Branches {
		responses = append(responses, BranchResponse{
			ID:         b.ID,
			Name:       b.Name,
			Address:    b.Address,
			TermPolicy: b.TermPolicy,
			Plans:      b.TermPolicy.Plans(),
			Prices:     b.Prices,
		})
	}
	c.JSON(http.StatusOK, responses)
}
