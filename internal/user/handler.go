package user

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

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   User
// @Failure      500  {object}  api.ErrorResponse
// @Router       /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  User
// @Failure      404     {object}  api.ErrorResponse
// @Router       /users/{userID} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user ID"})
		return
	}

	u, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// CreateOrFindUser godoc
// @Summary      Create a user, or return the existing one by email
// @Description  Idempotent by email: posting the same email twice returns the
// @Description  original record with status 200 instead of creating a duplicate.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      CreateUserRequest  true  "User"
// @Success      200      {object}  User
// @Success      201      {object}  User
// @Failure      400      {object}  api.ErrorResponse
// @Router       /users [post]
func (h *Handler) CreateOrFindUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to look up user"})
		return
	}

	u, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, u)
}
