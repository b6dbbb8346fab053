package court

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

// ListCourts godoc
// @Summary      List courts
// @Tags         courts
// @Produce      json
// @Success      200  {array}   Court
// @Failure      500  {object}  api.ErrorResponse
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	courts, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// GetCourt godoc
// @Summary      Get court by ID
// @Tags         courts
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  Court
// @Failure      404      {object}  api.ErrorResponse
// @Router       /courts/{courtID} [get]
func (h *Handler) GetCourt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid court ID"})
		return
	}

	court, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch court"})
		return
	}

	c.JSON(http.StatusOK, court)
}

// CreateCourt godoc
// @Summary      Create court
// @Tags         courts
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourtRequest  true  "Court"
// @Success      201      {object}  Court
// @Failure      400      {object}  api.ErrorResponse
// @Router       /courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	court, err := h.repo.Create(c.Request.Context(), req.Name, req.Type, *req.BasePrice, isActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, court)
}

// UpdateCourt godoc
// @Summary      Update court
// @Tags         courts
// @Accept       json
// @Produce      json
// @Param        courtID  path      int                 true  "Court ID"
// @Param        request  body      UpdateCourtRequest  true  "Fields to update"
// @Success      200      {object}  Court
// @Failure      404      {object}  api.ErrorResponse
// @Router       /courts/{courtID} [put]
func (h *Handler) UpdateCourt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid court ID"})
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	court, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch court"})
		return
	}

	if req.Name != nil {
		court.Name = *req.Name
	}
	if req.Type != nil {
		court.Type = *req.Type
	}
	if req.BasePrice != nil {
		court.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	updated, err := h.repo.Update(c.Request.Context(), court)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update court"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCourt godoc
// @Summary      Delete court
// @Tags         courts
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /courts/{courtID} [delete]
func (h *Handler) DeleteCourt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid court ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete court"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "court deleted"})
}
