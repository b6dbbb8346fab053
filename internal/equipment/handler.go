package equipment

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

// ListEquipment godoc
// @Summary      List equipment inventory
// @Tags         equipment
// @Produce      json
// @Success      200  {array}   Equipment
// @Failure      500  {object}  api.ErrorResponse
// @Router       /equipment [get]
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetEquipment godoc
// @Summary      Get equipment by ID
// @Tags         equipment
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Success      200          {object}  Equipment
// @Failure      404          {object}  api.ErrorResponse
// @Router       /equipment/{equipmentID} [get]
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipmentID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid equipment ID"})
		return
	}

	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// CreateEquipment godoc
// @Summary      Create equipment inventory record
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEquipmentRequest  true  "Equipment"
// @Success      201      {object}  Equipment
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /equipment [post]
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.repo.Create(c.Request.Context(), req.Type, *req.TotalStock, *req.PricePerUnit)
	if err != nil {
		if errors.Is(err, ErrEquipmentTypeExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "equipment type already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create equipment"})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// UpdateEquipment godoc
// @Summary      Update equipment inventory record
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        equipmentID  path      int                     true  "Equipment ID"
// @Param        request      body      UpdateEquipmentRequest  true  "Fields to update"
// @Success      200          {object}  Equipment
// @Failure      404          {object}  api.ErrorResponse
// @Router       /equipment/{equipmentID} [put]
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipmentID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid equipment ID"})
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch equipment"})
		return
	}

	if req.TotalStock != nil {
		e.TotalStock = *req.TotalStock
	}
	if req.PricePerUnit != nil {
		e.PricePerUnit = *req.PricePerUnit
	}

	updated, err := h.repo.Update(c.Request.Context(), e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update equipment"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEquipment godoc
// @Summary      Delete equipment inventory record
// @Tags         equipment
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Success      200          {object}  api.MessageResponse
// @Failure      404          {object}  api.ErrorResponse
// @Router       /equipment/{equipmentID} [delete]
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("equipmentID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid equipment ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete equipment"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "equipment deleted"})
}
