package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/model"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Create inserts the project and its three default columns in one
// transaction, so no board is ever observable without Todo/In Progress/Done
// at order_index 0/1/2.
func (s *ProjectService) Create(name, description string, p model.Principal) (*model.Project, error) {
	var count int64
	s.db.Model(&model.Project{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("40005:project name already exists")
	}

	project := &model.Project{
		Name:        name,
		Description: description,
		OwnerID:     p.ID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		columns := make([]model.BoardColumn, 0, len(model.DefaultColumnNames))
		for i, colName := range model.DefaultColumnNames {
			columns = append(columns, model.BoardColumn{
				Name:       colName,
				OrderIndex: i,
				ProjectID:  project.ID,
			})
		}
		return tx.Create(&columns).Error
	})
	if err != nil {
		return nil, err
	}

	if err := boardQuery(s.db).First(project, project.ID).Error; err != nil {
		return nil, err
	}
	return project, nil
}
