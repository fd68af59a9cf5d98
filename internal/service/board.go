package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/cache"
	"github.com/nikajr10/project-management/internal/model"
)

// BoardService assembles the read view: a project with its columns ordered by
// order_index and each column's tasks ordered by position.
type BoardService struct {
	db    *gorm.DB
	scope *ScopeService
	cache *cache.BoardCache
}

func NewBoardService(db *gorm.DB, scope *ScopeService, boardCache *cache.BoardCache) *BoardService {
	return &BoardService{db: db, scope: scope, cache: boardCache}
}

func boardQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("board_columns.order_index ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_items.position ASC")
		})
}

// ListProjects returns the boards visible to the principal: every board for
// an admin, assigned boards only for a regular user.
func (s *BoardService) ListProjects(p model.Principal) ([]model.Project, error) {
	ids, err := s.scope.VisibleProjectIDs(p)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Project{}, nil
	}

	var projects []model.Project
	if err := boardQuery(s.db).Where("id IN ?", ids).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject loads one board by id. Fetch-by-id is open to any authenticated
// principal; only the list endpoint scope-filters.
func (s *BoardService) GetProject(ctx context.Context, id uint) (*model.Project, error) {
	if project, ok := s.cache.GetProject(ctx, id); ok {
		return project, nil
	}

	var project model.Project
	if err := boardQuery(s.db).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:project not found")
		}
		return nil, err
	}

	s.cache.SetProject(ctx, &project)
	return &project, nil
}
