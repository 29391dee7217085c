package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/dwikikusuma/storefront/internal/user/app"
)

type UserHandler struct {
	svc *userapp.Service
}

func NewUserHandler(svc *userapp.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	u, err := h.svc.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": userView{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Email:    u.Email,
		},
	})
}
