package models

import "errors"

// Request DTOs and their validation rules. The validation contract is
// defined here, independent of the storage schema; handlers return the
// first failing field's message.

// CredentialsInput for registration and login.
type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *CredentialsInput) Validate() error {
	if in.Username == "" {
		return errors.New("Username is required")
	}
	if in.Password == "" {
		return errors.New("Password is required")
	}
	return nil
}

// CreateTaskInput for creating a new task. Status defaults to pending
// when omitted.
type CreateTaskInput struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
}

func (in *CreateTaskInput) Validate() error {
	if in.Title == "" {
		return errors.New("Title is required")
	}
	if in.Status != nil && !in.Status.Valid() {
		return errors.New("Status must be one of pending, in_progress, completed")
	}
	return nil
}

// UpdateTaskInput for partial task updates. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
}

func (in *UpdateTaskInput) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return errors.New("Title must not be empty")
	}
	if in.Status != nil && !in.Status.Valid() {
		return errors.New("Status must be one of pending, in_progress, completed")
	}
	return nil
}

// TaskFilter narrows a task listing. All predicates compose with AND.
type TaskFilter struct {
	Search string // case-insensitive substring match on title
	Status string // exact status match
	Sort   string // "desc" or "asc" by creation time; otherwise store order
}
