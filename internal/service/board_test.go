package service

import (
	"context"
	"strings"
	"testing"

	"github.com/nikajr10/project-management/internal/model"
)

func TestProjectCreateBootstrapsColumns(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)

	project := createTestProject(t, db, "P1", admin.ID)

	if len(project.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(project.Columns))
	}
	for i, want := range model.DefaultColumnNames {
		col := project.Columns[i]
		if col.Name != want || col.OrderIndex != i {
			t.Errorf("column %d = %q (order %d), want %q (order %d)", i, col.Name, col.OrderIndex, want, i)
		}
		if len(col.Tasks) != 0 {
			t.Errorf("column %q bootstrapped with %d tasks, want 0", col.Name, len(col.Tasks))
		}
	}
}

func TestProjectCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	createTestProject(t, db, "P1", admin.ID)

	svc := NewProjectService(db)
	_, err := svc.Create("P1", "", model.Principal{ID: admin.ID, Role: model.RoleAdmin})
	if err == nil || !strings.HasPrefix(err.Error(), "40005") {
		t.Fatalf("err = %v, want duplicate-name error", err)
	}
}

func TestVisibleProjectIDs(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	user := createTestUser(t, db, "bob", model.RoleUser)
	p1 := createTestProject(t, db, "P1", admin.ID)
	createTestProject(t, db, "P2", admin.ID)

	if err := db.Create(&model.ProjectAssignment{ProjectID: p1.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("assign: %v", err)
	}

	scope := NewScopeService(db)

	adminIDs, err := scope.VisibleProjectIDs(model.Principal{ID: admin.ID, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("admin scope: %v", err)
	}
	if len(adminIDs) != 2 {
		t.Errorf("admin sees %v, want both projects", adminIDs)
	}

	userIDs, err := scope.VisibleProjectIDs(model.Principal{ID: user.ID, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("user scope: %v", err)
	}
	if len(userIDs) != 1 || userIDs[0] != p1.ID {
		t.Errorf("user sees %v, want [%d]", userIDs, p1.ID)
	}
}

func TestVisibleProjectIDsRejectsZeroPrincipal(t *testing.T) {
	db := setupTestDB(t)
	scope := NewScopeService(db)

	_, err := scope.VisibleProjectIDs(model.Principal{})
	if err == nil || !strings.HasPrefix(err.Error(), "40103") {
		t.Fatalf("err = %v, want invalid-principal error", err)
	}
}

func TestListProjectsScoped(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	user := createTestUser(t, db, "bob", model.RoleUser)
	p1 := createTestProject(t, db, "P1", admin.ID)
	createTestProject(t, db, "P2", admin.ID)
	db.Create(&model.ProjectAssignment{ProjectID: p1.ID, UserID: user.ID})

	board := NewBoardService(db, NewScopeService(db), nil)

	adminView, err := board.ListProjects(model.Principal{ID: admin.ID, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin list has %d projects, want 2", len(adminView))
	}

	userView, err := board.ListProjects(model.Principal{ID: user.ID, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("user list: %v", err)
	}
	if len(userView) != 1 || userView[0].ID != p1.ID {
		t.Errorf("user list = %v, want only project %d", userView, p1.ID)
	}

	// A user with no assignments sees an empty list, not an error.
	loner := createTestUser(t, db, "carol", model.RoleUser)
	lonerView, err := board.ListProjects(model.Principal{ID: loner.ID, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("loner list: %v", err)
	}
	if len(lonerView) != 0 {
		t.Errorf("unassigned user sees %d projects, want 0", len(lonerView))
	}
}

func TestGetProjectOrdering(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin)
	project := createTestProject(t, db, "P1", admin.ID)

	tasks := NewTaskService(db, nil)
	todo := project.Columns[0]
	a := createTestTask(t, tasks, todo.ID, "a")
	createTestTask(t, tasks, todo.ID, "b")
	createTestTask(t, tasks, todo.ID, "c")
	// b, c shift when a moves behind them
	if err := tasks.Move(a.ID, todo.ID, 2); err != nil {
		t.Fatalf("move: %v", err)
	}

	board := NewBoardService(db, NewScopeService(db), nil)
	view, err := board.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}

	if len(view.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(view.Columns))
	}
	for i, col := range view.Columns {
		if col.OrderIndex != i {
			t.Errorf("column %d has order_index %d", i, col.OrderIndex)
		}
	}
	got := make([]string, 0, 3)
	for _, task := range view.Columns[0].Tasks {
		got = append(got, task.Title)
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("task order = %v, want %v", got, want)
		}
	}
}

func TestGetProjectNotFound(t *testing.T) {
	db := setupTestDB(t)
	board := NewBoardService(db, NewScopeService(db), nil)

	_, err := board.GetProject(context.Background(), 404)
	if err == nil || !strings.HasPrefix(err.Error(), "40402") {
		t.Fatalf("err = %v, want project-not-found", err)
	}
}
