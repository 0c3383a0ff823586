package models

import "testing"

func strPtr(s string) *string { return &s }

func statusPtr(s TaskStatus) *TaskStatus { return &s }

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	for _, s := range []TaskStatus{"", "archived", "Pending", "done"} {
		if s.Valid() {
			t.Errorf("%q reported valid", s)
		}
	}
}

func TestCreateTaskInputValidateReturnsFirstError(t *testing.T) {
	bad := CreateTaskInput{Status: statusPtr("archived")}
	err := bad.Validate()
	if err == nil {
		t.Fatal("invalid input validated")
	}
	// title is checked before status
	if err.Error() != "Title is required" {
		t.Errorf("first error = %q", err.Error())
	}

	badStatus := CreateTaskInput{Title: "x", Status: statusPtr("archived")}
	if err := badStatus.Validate(); err == nil {
		t.Error("invalid status validated")
	}

	ok := CreateTaskInput{Title: "x", Description: strPtr("d"), Status: statusPtr(StatusCompleted)}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	minimal := CreateTaskInput{Title: "x"}
	if err := minimal.Validate(); err != nil {
		t.Errorf("title-only input rejected: %v", err)
	}
}

func TestUpdateTaskInputValidateAllowsEmptyPatch(t *testing.T) {
	empty := UpdateTaskInput{}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty patch rejected: %v", err)
	}

	blankTitle := UpdateTaskInput{Title: strPtr("")}
	if err := blankTitle.Validate(); err == nil {
		t.Error("blank title accepted")
	}

	badStatus := UpdateTaskInput{Status: statusPtr("nope")}
	if err := badStatus.Validate(); err == nil {
		t.Error("invalid status accepted")
	}
}

func TestCredentialsInputValidate(t *testing.T) {
	if err := (&CredentialsInput{Password: "x"}).Validate(); err == nil {
		t.Error("missing username accepted")
	}
	if err := (&CredentialsInput{Username: "x"}).Validate(); err == nil {
		t.Error("missing password accepted")
	}
	if err := (&CredentialsInput{Username: "x", Password: "y"}).Validate(); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
}
