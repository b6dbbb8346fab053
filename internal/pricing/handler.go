package pricing

import (
	"errors"
	"net/http"
	"strconv"

	"courtbook/internal/api"
	"courtbook/internal/court"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type Handler struct {
	repo    Repository
	service Service
}

func NewHandler(repo Repository, service Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// CalculatePrice godoc
// @Summary      Calculate a price quote
// @Description  Computes an itemized breakdown for the requested court,
// @Description  interval, optional coach and equipment from the active rules.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      QuoteRequest  true  "Quote request"
// @Success      200      {object}  Breakdown
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /utils/calculate-price [post]
func (h *Handler) CalculatePrice(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	breakdown, err := h.service.Quote(c.Request.Context(), req.CourtID, req.CoachID, req.StartTime, req.EndTime, req.RacketCount, req.ShoeCount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, court.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "court not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to calculate price"})
		}
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// ListRules godoc
// @Summary      List pricing rules
// @Tags         pricing
// @Produce      json
// @Success      200  {array}   Rule
// @Failure      500  {object}  api.ErrorResponse
// @Router       /pricing-rules [get]
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch pricing rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// GetRule godoc
// @Summary      Get pricing rule by ID
// @Tags         pricing
// @Produce      json
// @Param        ruleID  path      int  true  "Rule ID"
// @Success      200     {object}  Rule
// @Failure      404     {object}  api.ErrorResponse
// @Router       /pricing-rules/{ruleID} [get]
func (h *Handler) GetRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ruleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid rule ID"})
		return
	}

	rule, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "pricing rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch pricing rule"})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// CreateRule godoc
// @Summary      Create pricing rule
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRuleRequest  true  "Rule"
// @Success      201      {object}  Rule
// @Failure      400      {object}  api.ErrorResponse
// @Router       /pricing-rules [post]
func (h *Handler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if msg, ok := validateClocks(req.StartClock, req.EndClock); !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		return
	}

	rule := &Rule{
		Name:       req.Name,
		RuleType:   req.RuleType,
		StartClock: req.StartClock,
		EndClock:   req.EndClock,
		DaysOfWeek: pq.Int64Array(req.DaysOfWeek),
		Multiplier: 1,
		Surcharge:  0,
		IsActive:   true,
	}
	if req.Multiplier != nil {
		rule.Multiplier = *req.Multiplier
	}
	if req.Surcharge != nil {
		rule.Surcharge = *req.Surcharge
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	created, err := h.repo.Create(c.Request.Context(), rule)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create pricing rule"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateRule godoc
// @Summary      Update pricing rule
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        ruleID   path      int                true  "Rule ID"
// @Param        request  body      UpdateRuleRequest  true  "Fields to update"
// @Success      200      {object}  Rule
// @Failure      404      {object}  api.ErrorResponse
// @Router       /pricing-rules/{ruleID} [put]
func (h *Handler) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ruleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid rule ID"})
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if msg, ok := validateClocks(req.StartClock, req.EndClock); !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		return
	}

	rule, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "pricing rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch pricing rule"})
		return
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.RuleType != nil {
		rule.RuleType = *req.RuleType
	}
	if req.StartClock != nil {
		rule.StartClock = req.StartClock
	}
	if req.EndClock != nil {
		rule.EndClock = req.EndClock
	}
	if req.DaysOfWeek != nil {
		rule.DaysOfWeek = pq.Int64Array(req.DaysOfWeek)
	}
	if req.Multiplier != nil {
		rule.Multiplier = *req.Multiplier
	}
	if req.Surcharge != nil {
		rule.Surcharge = *req.Surcharge
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	updated, err := h.repo.Update(c.Request.Context(), rule)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update pricing rule"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRule godoc
// @Summary      Delete pricing rule
// @Tags         pricing
// @Produce      json
// @Param        ruleID  path      int  true  "Rule ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /pricing-rules/{ruleID} [delete]
func (h *Handler) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ruleID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid rule ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "pricing rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete pricing rule"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "pricing rule deleted"})
}

func validateClocks(start, end *string) (string, bool) {
	if start != nil && !ValidClock(*start) {
		return "invalid start_clock, use HH:MM (24-hour)", false
	}
	if end != nil && !ValidClock(*end) {
		return "invalid end_clock, use HH:MM (24-hour)", false
	}
	return "", true
}
