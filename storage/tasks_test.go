package storage

import (
	"context"
	"testing"

	"github.com/taskhub/task-manager-api/models"
)

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func mustCreateTask(t *testing.T, tasks *TaskStore, ownerID int64, input models.CreateTaskInput) *models.Task {
	t.Helper()
	task, err := tasks.Create(context.Background(), ownerID, input)
	if err != nil {
		t.Fatalf("Create(%q): %v", input.Title, err)
	}
	return task
}

func TestTaskStoreCreateDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	task := mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "Buy milk"})

	if task.ID == 0 {
		t.Error("id was not server-assigned")
	}
	if task.CreatedAt.IsZero() {
		t.Error("created_at was not server-assigned")
	}
	if task.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if task.Description != nil {
		t.Errorf("description = %v, want null", *task.Description)
	}
	if task.UserID != owner {
		t.Errorf("userId = %d, want %d", task.UserID, owner)
	}
}

func TestTaskStoreListIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	tasks := NewTaskStore(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	for _, title := range []string{"one", "two", "three"} {
		mustCreateTask(t, tasks, alice, models.CreateTaskInput{Title: title})
	}
	mustCreateTask(t, tasks, bob, models.CreateTaskInput{Title: "bob's task"})

	aliceTasks, err := tasks.List(context.Background(), alice, models.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliceTasks) != 3 {
		t.Errorf("alice sees %d tasks, want 3", len(aliceTasks))
	}
	for _, task := range aliceTasks {
		if task.UserID != alice {
			t.Errorf("alice's listing leaked task %d owned by %d", task.ID, task.UserID)
		}
	}

	bobTasks, err := tasks.List(context.Background(), bob, models.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bobTasks) != 1 {
		t.Errorf("bob sees %d tasks, want 1", len(bobTasks))
	}
}

func TestTaskStoreListFiltersCompose(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "foo groceries", Status: statusPtr(models.StatusCompleted)})
	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "foo laundry", Status: statusPtr(models.StatusPending)})
	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "bar errand", Status: statusPtr(models.StatusCompleted)})

	got, err := tasks.List(context.Background(), owner, models.TaskFilter{Search: "foo", Status: "completed"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want exactly the one matching both predicates", len(got))
	}
	if got[0].Title != "foo groceries" {
		t.Errorf("got %q", got[0].Title)
	}
}

func TestTaskStoreListSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "Buy MILK"})
	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "walk dog"})

	got, err := tasks.List(context.Background(), owner, models.TaskFilter{Search: "milk"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Buy MILK" {
		t.Errorf("case-insensitive search failed: %+v", got)
	}
}

func TestTaskStoreListSortByCreationTime(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	first := mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "first"})
	mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "second"})
	third := mustCreateTask(t, tasks, owner, models.CreateTaskInput{Title: "third"})

	desc, err := tasks.List(context.Background(), owner, models.TaskFilter{Sort: "desc"})
	if err != nil {
		t.Fatalf("List desc: %v", err)
	}
	if len(desc) != 3 || desc[0].ID != third.ID || desc[2].ID != first.ID {
		t.Errorf("desc order wrong: %v, %v, %v", desc[0].ID, desc[1].ID, desc[2].ID)
	}

	asc, err := tasks.List(context.Background(), owner, models.TaskFilter{Sort: "asc"})
	if err != nil {
		t.Fatalf("List asc: %v", err)
	}
	if len(asc) != 3 || asc[0].ID != first.ID || asc[2].ID != third.ID {
		t.Errorf("asc order wrong: %v, %v, %v", asc[0].ID, asc[1].ID, asc[2].ID)
	}
}

func TestTaskStoreListEmptyIsNonNil(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	got, err := tasks.List(context.Background(), owner, models.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil {
		t.Error("empty listing is nil; it must serialize as []")
	}
	if len(got) != 0 {
		t.Errorf("got %d tasks, want 0", len(got))
	}
}

func TestTaskStoreGetIsOwnerAgnostic(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	tasks := NewTaskStore(db)
	alice := seedUser(t, users, "alice")
	seedUser(t, users, "bob")

	created := mustCreateTask(t, tasks, alice, models.CreateTaskInput{Title: "alice's"})

	got, err := tasks.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.UserID != alice {
		t.Errorf("Get did not return the row regardless of caller: %+v", got)
	}

	missing, err := tasks.Get(context.Background(), 9999)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if missing != nil {
		t.Errorf("Get on missing id returned %+v", missing)
	}
}

func TestTaskStoreUpdateAppliesOnlySuppliedFields(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskStore(db)
	owner := seedUser(t, NewUserStore(db), "alice")

	created := mustCreateTask(t, tasks, owner, models.CreateTaskInput{
		Title:       "Buy milk",
		Description: strPtr("2 liters"),
	})

	updated, err := tasks.Update(context.Background(), created.ID, owner, models.UpdateTaskInput{
		Status: statusPtr(models.StatusCompleted),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil {
		t.Fatal("Update returned no row for an owned task")
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}
	if updated.Title != "Buy milk" {
		t.Errorf("title changed to %q on a status-only update", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "2 liters" {
		t.Error("description changed on a status-only update")
	}
}

func TestTaskStoreUpdateByNonOwnerLeavesTaskUnchanged(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	tasks := NewTaskStore(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	created := mustCreateTask(t, tasks, alice, models.CreateTaskInput{Title: "alice's"})

	updated, err := tasks.Update(context.Background(), created.ID, bob, models.UpdateTaskInput{
		Title: strPtr("hijacked"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Fatalf("non-owner update returned a row: %+v", updated)
	}

	current, err := tasks.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if current.Title != "alice's" {
		t.Errorf("task was mutated by a non-owner: title = %q", current.Title)
	}
}

func TestTaskStoreDeleteIsOwnedAndFinal(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	tasks := NewTaskStore(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	ctx := context.Background()

	created := mustCreateTask(t, tasks, alice, models.CreateTaskInput{Title: "doomed"})

	if ok, err := tasks.Delete(ctx, created.ID, bob); err != nil || ok {
		t.Fatalf("non-owner delete: ok=%v err=%v, want false nil", ok, err)
	}

	if ok, err := tasks.Delete(ctx, created.ID, alice); err != nil || !ok {
		t.Fatalf("owner delete: ok=%v err=%v, want true nil", ok, err)
	}

	gone, err := tasks.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gone != nil {
		t.Errorf("task still present after delete: %+v", gone)
	}

	if ok, err := tasks.Delete(ctx, created.ID, alice); err != nil || ok {
		t.Errorf("double delete: ok=%v err=%v, want false nil", ok, err)
	}
}
