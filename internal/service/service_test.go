package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nikajr10/project-management/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps the in-memory database shared across the
	// pool and serializes concurrent transactions the way MySQL's row locks
	// would.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectAssignment{},
		&model.BoardColumn{},
		&model.TaskItem{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, ownerID uint) *model.Project {
	t.Helper()
	svc := NewProjectService(db)
	project, err := svc.Create(name, "", model.Principal{ID: ownerID, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	return project
}

func createTestTask(t *testing.T, svc *TaskService, columnID uint, title string) *model.TaskItem {
	t.Helper()
	task, err := svc.Create(columnID, TaskInput{Title: title})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

// columnOrder returns the task titles of a column sorted by position, after
// asserting the positions are exactly {0..count-1}.
func columnOrder(t *testing.T, db *gorm.DB, columnID uint) []string {
	t.Helper()
	var tasks []model.TaskItem
	if err := db.Where("column_id = ?", columnID).Order("position").Find(&tasks).Error; err != nil {
		t.Fatalf("load column %d: %v", columnID, err)
	}
	titles := make([]string, 0, len(tasks))
	for i, task := range tasks {
		if task.Position != i {
			t.Fatalf("column %d positions not dense: index %d holds position %d", columnID, i, task.Position)
		}
		titles = append(titles, task.Title)
	}
	return titles
}

func assertOrder(t *testing.T, db *gorm.DB, columnID uint, want ...string) {
	t.Helper()
	got := columnOrder(t, db, columnID)
	if len(got) != len(want) {
		t.Fatalf("column %d: got %v, want %v", columnID, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: got %v, want %v", columnID, got, want)
		}
	}
}

func timePtr(v time.Time) *time.Time { return &v }
