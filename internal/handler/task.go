package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikajr10/project-management/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	Title          string     `json:"title" binding:"required,max=255"`
	Description    string     `json:"description" binding:"max=5000"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	StartDate      *time.Time `json:"start_date"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *uint      `json:"assigned_user_id"`
	ColumnID       uint       `json:"column_id"`
}

func (r *taskRequest) input() service.TaskInput {
	return service.TaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		StartDate:      r.StartDate,
		DueDate:        r.DueDate,
		AssignedUserID: r.AssignedUserID,
	}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}
	if req.ColumnID == 0 {
		BadRequest(c, 40004, "column_id is required")
		return
	}

	task, err := h.taskService.Create(req.ColumnID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	task, err := h.taskService.Update(id, req.input(), req.ColumnID)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, task)
}

// POST /tasks/move
func (h *TaskHandler) Move(c *gin.Context) {
	var req struct {
		TaskID         uint `json:"task_id" binding:"required"`
		TargetColumnID uint `json:"target_column_id" binding:"required"`
		NewPosition    *int `json:"new_position" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	if err := h.taskService.Move(req.TaskID, req.TargetColumnID, *req.NewPosition); err != nil {
		respondError(c, err)
		return
	}

	// Report the committed location; an out-of-range target may have been
	// clamped to the end of the column.
	task, err := h.taskService.GetByID(req.TaskID)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"task_id": task.ID, "column_id": task.ColumnID, "position": task.Position})
}
