package database

import (
	"context"
	"fmt"

	"github.com/taskhub/task-manager-api/auth"
	"github.com/taskhub/task-manager-api/models"
	"github.com/taskhub/task-manager-api/storage"
)

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

// SeedDemoData creates the demo account and its three example tasks on
// first startup. A second run is a no-op.
func SeedDemoData(ctx context.Context, users *storage.UserStore, tasks *storage.TaskStore) error {
	existing, err := users.GetByUsername(ctx, "demo")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := auth.HashPassword("demo123")
	if err != nil {
		return err
	}
	user, err := users.Create(ctx, "demo", hashed)
	if err != nil {
		return err
	}

	demoTasks := []models.CreateTaskInput{
		{
			Title:       "Welcome to Task Manager",
			Description: strPtr("This is your first task. You can edit or delete it."),
			Status:      statusPtr(models.StatusPending),
		},
		{
			Title:       "In Progress Task",
			Description: strPtr("This task is currently being worked on."),
			Status:      statusPtr(models.StatusInProgress),
		},
		{
			Title:       "Completed Task",
			Description: strPtr("This task has been finished."),
			Status:      statusPtr(models.StatusCompleted),
		},
	}
	for _, input := range demoTasks {
		if _, err := tasks.Create(ctx, user.ID, input); err != nil {
			return err
		}
	}

	fmt.Println("Seeded demo user and tasks")
	return nil
}
