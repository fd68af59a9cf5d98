package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nikajr10/project-management/internal/middleware"
	"github.com/nikajr10/project-management/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	boardService   *service.BoardService
}

func NewProjectHandler(projectService *service.ProjectService, boardService *service.BoardService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, boardService: boardService}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=128"`
		Description string `json:"description" binding:"max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	p, _ := middleware.GetPrincipal(c)
	project, err := h.projectService.Create(req.Name, req.Description, p)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, project)
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		Unauthorized(c, 40103, "not authenticated")
		return
	}

	projects, err := h.boardService.ListProjects(p)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, projects)
}

// GET /projects/:id
func (h *ProjectHandler) GetDetail(c *gin.Context) {
	id := parseID(c.Param("id"))
	project, err := h.boardService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, project)
}
