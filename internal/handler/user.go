package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nikajr10/project-management/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePage(c)
	keyword := c.Query("keyword")

	users, total, err := h.authService.ListUsers(keyword, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"role":       u.Role,
			"created_at": u.CreatedAt,
		})
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Username   string `json:"username" binding:"required,max=64"`
		Password   string `json:"password" binding:"required,min=6"`
		ProjectIDs []uint `json:"project_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.CreateUser(req.Username, req.Password, req.ProjectIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	Success(c, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"role":        user.Role,
		"project_ids": req.ProjectIDs,
	})
}

// PUT /admin/users/:id/projects
func (h *UserHandler) AssignProjects(c *gin.Context) {
	userID := parseID(c.Param("id"))
	var req struct {
		ProjectIDs []uint `json:"project_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	added, err := h.authService.AssignProjects(userID, req.ProjectIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"user_id": userID, "added": added})
}
