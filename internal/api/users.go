package api

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/entities"
	"net/http"
)

type createUserRequest struct {
	Username  string        `json:"username" binding:"required,min=3,max=64"`
	FirstName string        `json:"firstName" binding:"required"`
	LastName  string        `json:"lastName" binding:"required"`
	Email     string        `json:"email" binding:"required,email"`
	Role      entities.Role `json:"role" binding:"required,oneof=admin hiring_manager recruiter"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), entities.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), caller(c).Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
