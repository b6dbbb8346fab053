package coach

import (
	"errors"
	"net/http"
	"strconv"

	"courtbook/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListCoaches godoc
// @Summary      List coaches
// @Tags         coaches
// @Produce      json
// @Success      200  {array}   Coach
// @Failure      500  {object}  api.ErrorResponse
// @Router       /coaches [get]
func (h *Handler) ListCoaches(c *gin.Context) {
	coaches, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch coaches"})
		return
	}

	c.JSON(http.StatusOK, coaches)
}

// GetCoach godoc
// @Summary      Get coach by ID
// @Tags         coaches
// @Produce      json
// @Param        coachID  path      int  true  "Coach ID"
// @Success      200      {object}  Coach
// @Failure      404      {object}  api.ErrorResponse
// @Router       /coaches/{coachID} [get]
func (h *Handler) GetCoach(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("coachID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid coach ID"})
		return
	}

	coach, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "coach not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch coach"})
		return
	}

	c.JSON(http.StatusOK, coach)
}

// CreateCoach godoc
// @Summary      Create coach
// @Tags         coaches
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCoachRequest  true  "Coach"
// @Success      201      {object}  Coach
// @Failure      400      {object}  api.ErrorResponse
// @Router       /coaches [post]
func (h *Handler) CreateCoach(c *gin.Context) {
	var req CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	coach, err := h.repo.Create(c.Request.Context(), req.Name, req.Specialization, *req.HourlyRate, isAvailable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create coach"})
		return
	}

	c.JSON(http.StatusCreated, coach)
}

// UpdateCoach godoc
// @Summary      Update coach
// @Tags         coaches
// @Accept       json
// @Produce      json
// @Param        coachID  path      int                 true  "Coach ID"
// @Param        request  body      UpdateCoachRequest  true  "Fields to update"
// @Success      200      {object}  Coach
// @Failure      404      {object}  api.ErrorResponse
// @Router       /coaches/{coachID} [put]
func (h *Handler) UpdateCoach(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("coachID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid coach ID"})
		return
	}

	var req UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	coach, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "coach not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch coach"})
		return
	}

	if req.Name != nil {
		coach.Name = *req.Name
	}
	if req.Specialization != nil {
		coach.Specialization = *req.Specialization
	}
	if req.HourlyRate != nil {
		coach.HourlyRate = *req.HourlyRate
	}
	if req.IsAvailable != nil {
		coach.IsAvailable = *req.IsAvailable
	}

	updated, err := h.repo.Update(c.Request.Context(), coach)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update coach"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCoach godoc
// @Summary      Delete coach
// @Tags         coaches
// @Produce      json
// @Param        coachID  path      int  true  "Coach ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /coaches/{coachID} [delete]
func (h *Handler) DeleteCoach(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("coachID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid coach ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "coach not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete coach"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "coach deleted"})
}
