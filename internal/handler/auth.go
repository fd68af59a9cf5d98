package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nikajr10/project-management/internal/middleware"
	"github.com/nikajr10/project-management/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	Success(c, gin.H{
		"token":     token,
		"expire_at": expireAt,
		"user":      user.Brief(),
	})
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, user.Brief())
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		Unauthorized(c, 40103, "not authenticated")
		return
	}
	user, err := h.authService.GetUserByID(p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	})
}
