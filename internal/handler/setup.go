package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nikajr10/project-management/internal/service"
)

type SetupHandler struct {
	authService *service.AuthService
}

func NewSetupHandler(authService *service.AuthService) *SetupHandler {
	return &SetupHandler{authService: authService}
}

// POST /setup/init
//
// One-time bootstrap for an empty installation. Refuses once any user exists.
func (h *SetupHandler) Init(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	if err := h.authService.Setup(req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"message": "admin and default board created"})
}
