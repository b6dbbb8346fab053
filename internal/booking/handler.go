package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtbook/internal/api"
	"courtbook/internal/coach"
	"courtbook/internal/court"
	"courtbook/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability godoc
// @Summary Check slot availability
// @Description Reports whether a court, optional coach and requested equipment are free for a time range
// @Tags utils
// @Accept json
// @Produce json
// @Param request body AvailabilityRequest true "Availability query"
// @Success 200 {object} AvailabilityResult
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /utils/check [post]
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), AvailabilityInput{
		CourtID:     req.CourtID,
		CoachID:     req.CoachID,
		Interval:    NewInterval(req.StartTime, req.EndTime),
		RacketCount: req.RacketCount,
		ShoeCount:   req.ShoeCount,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Books a court, optional coach and equipment for a time range, pricing it with the active rules
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking details"
// @Success 201 {object} Booking
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), CreateBookingInput{
		UserID:      req.UserID,
		CourtID:     req.CourtID,
		CoachID:     req.CoachID,
		Interval:    NewInterval(req.StartTime, req.EndTime),
		RacketCount: req.RacketCount,
		ShoeCount:   req.ShoeCount,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetBookings godoc
// @Summary List all bookings
// @Tags bookings
// @Produce json
// @Success 200 {array} Booking
// @Router /bookings [get]
func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.service.GetAllBookings(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking godoc
// @Summary Get a booking by ID
// @Tags bookings
// @Produce json
// @Param bookingID path int true "Booking ID"
// @Success 200 {object} Booking
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{bookingID} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid booking ID"})
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetUserBookings godoc
// @Summary List a user's bookings
// @Tags bookings
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {array} Booking
// @Router /users/{userID}/bookings [get]
func (h *Handler) GetUserBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user ID"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Marks a confirmed booking cancelled, releasing its court, coach and equipment
// @Tags bookings
// @Produce json
// @Param bookingID path int true "Booking ID"
// @Success 200 {object} Booking
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid booking ID"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var shortfall *EquipmentShortfallError
	var unknown *UnknownEquipmentError

	switch {
	case errors.Is(err, ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, court.ErrCourtNotFound),
		errors.Is(err, coach.ErrCoachNotFound),
		errors.As(err, &unknown):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrCourtUnavailable),
		errors.Is(err, ErrCoachUnavailable),
		errors.Is(err, ErrCoachInactive),
		errors.Is(err, ErrAlreadyCancelled),
		errors.As(err, &shortfall):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("booking request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
