package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nikajr10/project-management/internal/cache"
	"github.com/nikajr10/project-management/internal/model"
)

// maxTxRetries bounds how often a position mutation is replayed after a
// serialization failure before the caller gets a transient error.
const maxTxRetries = 3

// TaskService owns the per-column position sequence. Every mutation runs in
// one transaction that locks the affected column rows, so two concurrent
// writers can never compute a position from a stale count, and positions in
// every column stay exactly {0..count-1} between operations.
type TaskService struct {
	db    *gorm.DB
	cache *cache.BoardCache
}

func NewTaskService(db *gorm.DB, boardCache *cache.BoardCache) *TaskService {
	return &TaskService{db: db, cache: boardCache}
}

type TaskInput struct {
	Title          string
	Description    string
	Priority       string
	StartDate      *time.Time
	DueDate        *time.Time
	AssignedUserID *uint
}

// Create appends a task to the end of the column: position = current count,
// computed under the column lock so concurrent creates serialize.
func (s *TaskService) Create(columnID uint, in TaskInput) (*model.TaskItem, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	task := &model.TaskItem{
		Title:          in.Title,
		Description:    in.Description,
		Priority:       priority,
		StartDate:      in.StartDate,
		DueDate:        in.DueDate,
		AssignedUserID: in.AssignedUserID,
		ColumnID:       columnID,
	}

	err := s.withRetry(func(tx *gorm.DB) error {
		if err := lockColumns(tx, columnID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.TaskItem{}).Where("column_id = ?", columnID).Count(&count).Error; err != nil {
			return err
		}
		task.Position = int(count)
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateColumns(columnID)
	return task, nil
}

// Update overwrites the task's fields unconditionally. A changed column id is
// handled as a move appended to the destination, which also compacts the
// source column; create, update and move all share one relocation routine so
// no path can leave a gap behind.
func (s *TaskService) Update(id uint, in TaskInput, newColumnID uint) (*model.TaskItem, error) {
	var task model.TaskItem
	var touched []uint

	err := s.withRetry(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("40404:task not found")
			}
			return err
		}

		updates := map[string]interface{}{
			"title":            in.Title,
			"description":      in.Description,
			"priority":         in.Priority,
			"start_date":       in.StartDate,
			"due_date":         in.DueDate,
			"assigned_user_id": in.AssignedUserID,
		}
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		touched = []uint{task.ColumnID}
		if newColumnID != 0 && newColumnID != task.ColumnID {
			touched = append(touched, newColumnID)
			if err := lockColumns(tx, task.ColumnID, newColumnID); err != nil {
				return err
			}
			var destCount int64
			if err := tx.Model(&model.TaskItem{}).Where("column_id = ?", newColumnID).Count(&destCount).Error; err != nil {
				return err
			}
			return relocateTask(tx, &task, newColumnID, int(destCount))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateColumns(touched...)
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Move relocates the task to targetColumnID at newPosition. Both affected
// columns come out renumbered to a dense 0..N-1; a target position beyond the
// destination's count is clamped to an append rather than rejected, so the
// invariant cannot be broken by the caller. The whole thing is one
// transaction: either both columns reflect the move or neither does.
func (s *TaskService) Move(taskID, targetColumnID uint, newPosition int) error {
	if newPosition < 0 {
		return fmt.Errorf("40001:position must be non-negative")
	}

	var touched []uint
	err := s.withRetry(func(tx *gorm.DB) error {
		var task model.TaskItem
		if err := forUpdate(tx).First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("40404:task not found")
			}
			return err
		}

		if err := lockColumns(tx, task.ColumnID, targetColumnID); err != nil {
			return err
		}
		touched = []uint{task.ColumnID, targetColumnID}
		return relocateTask(tx, &task, targetColumnID, newPosition)
	})
	if err != nil {
		return err
	}

	s.invalidateColumns(touched...)
	return nil
}

func (s *TaskService) GetByID(id uint) (*model.TaskItem, error) {
	var task model.TaskItem
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40404:task not found")
		}
		return nil, err
	}
	return &task, nil
}

// forUpdate adds a FOR UPDATE row lock where the dialect supports it. SQLite
// has no FOR UPDATE; it serializes writers at the database level instead, so
// the clause is skipped there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// relocateTask is the single reconciliation routine behind update and move.
// It splices the task into the destination column's ordering at the clamped
// target index and reassigns 0..N-1 in both columns (a full renumber pass,
// not incremental shifts). Caller must hold locks on both column rows.
func relocateTask(tx *gorm.DB, task *model.TaskItem, targetColumnID uint, newPosition int) error {
	var dest []model.TaskItem
	if err := tx.Where("column_id = ? AND id != ?", targetColumnID, task.ID).
		Order("position").Find(&dest).Error; err != nil {
		return err
	}

	if task.ColumnID != targetColumnID {
		// Compact the source column the mover leaves behind.
		var src []model.TaskItem
		if err := tx.Where("column_id = ? AND id != ?", task.ColumnID, task.ID).
			Order("position").Find(&src).Error; err != nil {
			return err
		}
		for i := range src {
			if src[i].Position != i {
				if err := tx.Model(&model.TaskItem{}).Where("id = ?", src[i].ID).
					Update("position", i).Error; err != nil {
					return err
				}
			}
		}
	}

	if newPosition > len(dest) {
		newPosition = len(dest)
	}

	for i := range dest {
		want := i
		if i >= newPosition {
			want = i + 1
		}
		if dest[i].Position != want {
			if err := tx.Model(&model.TaskItem{}).Where("id = ?", dest[i].ID).
				Update("position", want).Error; err != nil {
				return err
			}
		}
	}

	if err := tx.Model(&model.TaskItem{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"column_id": targetColumnID,
			"position":  newPosition,
		}).Error; err != nil {
		return err
	}
	task.ColumnID = targetColumnID
	task.Position = newPosition
	return nil
}

// lockColumns takes FOR UPDATE locks on the column rows in ascending id
// order, so two cross-column moves in opposite directions cannot deadlock.
// It also validates that every referenced column exists.
func lockColumns(tx *gorm.DB, ids ...uint) error {
	uniq := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}

	var columns []model.BoardColumn
	if err := forUpdate(tx).
		Where("id IN ?", uniq).Order("id").Find(&columns).Error; err != nil {
		return err
	}
	if len(columns) != len(uniq) {
		return fmt.Errorf("40403:column not found")
	}
	return nil
}

// withRetry replays the transaction on serialization failures up to
// maxTxRetries times, then reports a transient conflict. Coded service errors
// pass through untouched.
func (s *TaskService) withRetry(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = s.db.Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return fmt.Errorf("50002:conflicting concurrent update, please retry: %w", err)
}

func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "try restarting transaction") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

func (s *TaskService) invalidateColumns(columnIDs ...uint) {
	if s.cache == nil || len(columnIDs) == 0 {
		return
	}
	var projectIDs []uint
	if err := s.db.Model(&model.BoardColumn{}).
		Where("id IN ?", columnIDs).
		Distinct().Pluck("project_id", &projectIDs).Error; err != nil {
		return
	}
	ctx := context.Background()
	for _, id := range projectIDs {
		s.cache.InvalidateProject(ctx, id)
	}
}
