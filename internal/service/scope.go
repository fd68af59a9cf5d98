package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/model"
)

// ScopeService resolves which projects a principal may see.
type ScopeService struct {
	db *gorm.DB
}

func NewScopeService(db *gorm.DB) *ScopeService {
	return &ScopeService{db: db}
}

// VisibleProjectIDs returns every project id for an admin, and otherwise the
// ids granted through project_assignments. A zero principal is rejected
// instead of being treated as "no access".
func (s *ScopeService) VisibleProjectIDs(p model.Principal) ([]uint, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("40103:invalid principal")
	}

	ids := make([]uint, 0)
	if p.IsAdmin() {
		if err := s.db.Model(&model.Project{}).Order("id").Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	}

	if err := s.db.Model(&model.ProjectAssignment{}).
		Where("user_id = ?", p.ID).
		Order("project_id").
		Pluck("project_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
