package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Username: email, Email: email, PasswordHash: "hash", IsActive: true}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := createUser(t, repo, "a@x.com")
	if user.ID == 0 {
		t.Fatal("expected server-assigned id")
	}

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != user.ID || !byEmail.IsActive {
		t.Fatalf("unexpected user: %+v", byEmail)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@x.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	createUser(t, repo, "dup@x.com")

	err := repo.Create(context.Background(), &model.User{Username: "b", Email: "dup@x.com", PasswordHash: "h"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestUserRepositoryCount(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	createUser(t, repo, "a@x.com")
	createUser(t, repo, "b@x.com")

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func TestTaskRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	owner := createUser(t, NewUserRepository(db), "a@x.com")

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := created
	repo := NewTaskRepository(db).WithClock(func() time.Time { return now })

	task, err := repo.Create(ctx, owner.ID, "buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == 0 || task.IsDone || task.UpdatedDate != nil {
		t.Fatalf("unexpected new task: %+v", task)
	}
	if !task.CreatedDate.Equal(created) {
		t.Fatalf("created = %v, want %v", task.CreatedDate, created)
	}

	now = created.Add(time.Hour)
	renamed, err := repo.UpdateTitle(ctx, owner.ID, task.ID, "buy oat milk")
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if renamed.Title != "buy oat milk" || renamed.IsDone {
		t.Fatalf("unexpected renamed task: %+v", renamed)
	}
	if renamed.UpdatedDate == nil || !renamed.UpdatedDate.Equal(now) {
		t.Fatalf("updated = %v, want %v", renamed.UpdatedDate, now)
	}
	if !renamed.CreatedDate.Equal(created) {
		t.Fatalf("created date changed: %v", renamed.CreatedDate)
	}

	now = created.Add(2 * time.Hour)
	done, err := repo.MarkDone(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if !done.IsDone || done.Title != "buy oat milk" {
		t.Fatalf("unexpected done task: %+v", done)
	}

	again, err := repo.MarkDone(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("mark done twice: %v", err)
	}
	if !again.IsDone {
		t.Fatal("expected task to stay done")
	}

	deleted, err := repo.Delete(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != task.ID || !deleted.IsDone {
		t.Fatalf("unexpected snapshot: %+v", deleted)
	}

	if _, err := repo.FindByID(ctx, owner.ID, task.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}
	if _, err := repo.Delete(ctx, owner.ID, task.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestTaskRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewUserRepository(db)
	alice := createUser(t, users, "alice@x.com")
	bob := createUser(t, users, "bob@x.com")
	repo := NewTaskRepository(db)

	task, err := repo.Create(ctx, alice.ID, "private")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	checks := map[string]func() error{
		"find": func() error { _, err := repo.FindByID(ctx, bob.ID, task.ID); return err },
		"update": func() error {
			_, err := repo.UpdateTitle(ctx, bob.ID, task.ID, "hijacked")
			return err
		},
		"done":   func() error { _, err := repo.MarkDone(ctx, bob.ID, task.ID); return err },
		"delete": func() error { _, err := repo.Delete(ctx, bob.ID, task.ID); return err },
	}
	for name, check := range checks {
		if err := check(); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("%s: expected ErrRecordNotFound, got %v", name, err)
		}
	}

	bobs, err := repo.ListByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bobs) != 0 {
		t.Fatalf("bob sees %d tasks", len(bobs))
	}

	still, err := repo.FindByID(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("find own task: %v", err)
	}
	if still.Title != "private" || still.IsDone {
		t.Fatalf("task was modified by another user: %+v", still)
	}
}

func TestTaskRepositoryListAndCount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	owner := createUser(t, NewUserRepository(db), "a@x.com")
	repo := NewTaskRepository(db)

	for _, title := range []string{"one", "two", "three"} {
		if _, err := repo.Create(ctx, owner.ID, title); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	tasks, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("len = %d, want 3", len(tasks))
	}
	if _, err := repo.MarkDone(ctx, owner.ID, tasks[0].ID); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	total, open, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 || open != 2 {
		t.Fatalf("total=%d open=%d, want 3/2", total, open)
	}
}

func TestInMemoryDatabaseShared(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	users := NewUserRepository(db)
	owner := createUser(t, users, "mem@x.com")

	ctx := context.Background()
	repo := NewTaskRepository(db)
	if _, err := repo.Create(ctx, owner.ID, "in memory"); err != nil {
		t.Fatalf("create: %v", err)
	}
	tasks, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len = %d, want 1", len(tasks))
	}
}
