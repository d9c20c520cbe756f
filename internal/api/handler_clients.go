package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gym-admin-backend/internal/membership"
	"gym-admin-backend/internal/model"
	"gym-admin-backend/internal/roster"
	"gym-admin-backend/internal/store"
)

// clientResponse pairs a stored client with its derived membership status.
type clientResponse struct {
	model.Client
	Status             membership.Status `json:"status"`
	MembershipEndLabel string            `json:"membershipEndLabel"`
}

func (h *Handler) clientResponses(clients []model.Client, now time.Time) []clientResponse {
	responses := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, clientResponse{
			Client:             c,
			Status:             membership.Evaluate(c.MembershipEnd, now),
			MembershipEndLabel: membership.FormatDate(c.MembershipEnd),
		})
	}
	return responses
}

// GetClients handles GET /api/branches/{branch_id}/clients. Without a search
// term the roster comes back active-first; a ?q= term narrows it by name or
// phone and keeps the store's order.
func (h *Handler) GetClients(c *gin.Context) {
	branch := h.branch(c.Param("branch_id"))
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
		return
	}

	clients, err := h.store.ListClients(c.Request.Context(), branch.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve clients"})
		return
	}

	now := h.now()
	if term, ok := c.GetQuery("q"); ok && strings.TrimSpace(term) != "" {
		clients = roster.Search(clients, term)
	} else {
		clients = roster.SortActiveFirst(clients, now)
	}

	c.JSON(http.StatusOK, h.clientResponses(clients, now))
}

type createClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MembershipType string `json:"membershipType" binding:"required"`
}

// CreateClient handles POST /api/branches/{branch_id}/clients. Registration
// resolves the plan's term and price from the branch configuration:
// membership runs from today to today plus the plan's term.
func (h *Handler) CreateClient(c *gin.Context) {
	branch := h.branch(c.Param("branch_id"))
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown branch"})
		return
	}

	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	plan := membership.Plan(req.MembershipType)
	now := h.now()
	start := dateOf(now)

	end, err := branch.TermPolicy.EndDate(plan, start)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := branch.PriceFor(plan)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := model.Client{
		BranchID:        branch.ID,
		Name:            req.Name,
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		MembershipType:  req.MembershipType,
		MembershipStart: &start,
		MembershipEnd:   &end,
		Price:           price,
	}
	if err := h.store.CreateClient(c.Request.Context(), &client); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, clientResponse{
		Client:             client,
		Status:             membership.Evaluate(client.MembershipEnd, now),
		MembershipEndLabel: membership.FormatDate(client.MembershipEnd),
	})
}

type updateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	// Manual membership date edits, YYYY-MM-DD. Stored as given: nothing
	// enforces start before end, renewal recomputes both anyway.
	MembershipStart *string `json:"membershipStart"`
	MembershipEnd   *string `json:"membershipEnd"`
}

// UpdateClient handles PATCH /api/clients/{client_id} with partial fields.
func (h *Handler) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := make(map[string]any)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		fields["name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	for column, value := range map[string]*string{
		"membership_start": req.MembershipStart,
		"membership_end":   req.MembershipEnd,
	} {
		if value == nil {
			continue
		}
		parsed, err := time.Parse("2006-01-02", *value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
		fields[column] = parsed
	}
	if len(fields) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	client, err := h.store.UpdateClient(c.Request.Context(), c.Param("client_id"), fields)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}

	now := h.now()
	c.JSON(http.StatusOK, clientResponse{
		Client:             *client,
		Status:             membership.Evaluate(client.MembershipEnd, now),
		MembershipEndLabel: membership.FormatDate(client.MembershipEnd),
	})
}

type renewClientRequest struct {
	// MembershipType optionally switches the plan on renewal; empty keeps
	// the client's current plan.
	MembershipType string `json:"membershipType"`
}

// RenewClient handles POST /api/clients/{client_id}/renew. Renewal always
// recomputes both dates from today under the branch's term policy.
func (h *Handler) RenewClient(c *gin.Context) {
	var req renewClientRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	client, err := h.store.GetClient(c.Request.Context(), c.Param("client_id"))
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client"})
		return
	}

	branch := h.branch(client.BranchID)
	if branch == nil {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "client's branch is no longer configured"})
		return
	}

	planKey := req.MembershipType
	if planKey == "" {
		planKey = client.MembershipType
	}
	plan := membership.Plan(planKey)

	now := h.now()
	start := dateOf(now)
	end, err := branch.TermPolicy.EndDate(plan, start)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, err := branch.PriceFor(plan)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateClient(c.Request.Context(), client.ID, map[string]any{
		"membership_type":  planKey,
		"membership_start": start,
		"membership_end":   end,
		"price":            price,
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to renew membership"})
		return
	}

	c.JSON(http.StatusOK, clientResponse{
		Client:             *updated,
		Status:             membership.Evaluate(updated.MembershipEnd, now),
		MembershipEndLabel: membership.FormatDate(updated.MembershipEnd),
	})
}

// dateOf truncates an instant to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
