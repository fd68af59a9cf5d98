package service

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nikajr10/project-management/internal/model"
	jwtpkg "github.com/nikajr10/project-management/pkg/jwt"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	jwtExpire int
}

func NewAuthService(db *gorm.DB, jwtSecret string, jwtExpire int) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret, jwtExpire: jwtExpire}
}

func (s *AuthService) Login(username, password string) (*model.User, string, time.Time, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("40105:invalid username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, fmt.Errorf("40105:invalid username or password")
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Role, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}
	return &user, token, expireAt, nil
}

// Register creates a self-service account. The role is always User; there is
// no way to self-register an admin.
func (s *AuthService) Register(username, password string) (*model.User, error) {
	return s.createUser(username, password, model.RoleUser)
}

// CreateUser is the admin flow: a new regular user plus an optional checklist
// of projects the user should see.
func (s *AuthService) CreateUser(username, password string, projectIDs []uint) (*model.User, error) {
	user, err := s.createUser(username, password, model.RoleUser)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) > 0 {
		if _, err := s.AssignProjects(user.ID, projectIDs); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *AuthService) createUser(username, password, role string) (*model.User, error) {
	var count int64
	s.db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("40002:username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AssignProjects grants the user visibility into the given projects. The
// operation is idempotent: a (project, user) pair that already exists is
// skipped, never an error. Unknown project ids are rejected before anything
// is written. Returns the ids actually added.
func (s *AuthService) AssignProjects(userID uint, projectIDs []uint) ([]uint, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40401:user not found")
		}
		return nil, err
	}

	added := make([]uint, 0, len(projectIDs))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, projectID := range projectIDs {
			var count int64
			tx.Model(&model.Project{}).Where("id = ?", projectID).Count(&count)
			if count == 0 {
				return fmt.Errorf("40402:project not found: id=%d", projectID)
			}

			assignment := model.ProjectAssignment{ProjectID: projectID, UserID: userID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				added = append(added, projectID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Setup initializes an empty installation: the admin account, a default
// project with its three columns, and a welcome task. Refuses to run once any
// user exists.
func (s *AuthService) Setup(username, password string) error {
	var count int64
	s.db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return fmt.Errorf("40003:already initialized")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		admin := &model.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		project := &model.Project{
			Name:        "Getting Started",
			Description: "Your first board",
			OwnerID:     admin.ID,
		}
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
		if err := tx.Create(&columns).Error; err != nil {
			return err
		}

		welcome := &model.TaskItem{
			Title:       "System Initialized",
			Description: "Admin account and default board are ready.",
			Priority:    model.PriorityHigh,
			Position:    0,
			ColumnID:    columns[0].ID,
		}
		return tx.Create(welcome).Error
	})
}

// EnsureAdmin seeds the configured admin account at startup if it does not
// exist yet. Used by main; a blank username disables it.
func (s *AuthService) EnsureAdmin(username, password string) error {
	if username == "" {
		return nil
	}
	var count int64
	s.db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.Create(&model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}).Error
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40401:user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) ListUsers(keyword string, page, pageSize int) ([]model.User, int64, error) {
	query := s.db.Model(&model.User{})
	if keyword != "" {
		query = query.Where("username LIKE ?", "%"+keyword+"%")
	}

	var total int64
	query.Count(&total)

	var users []model.User
	if err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
