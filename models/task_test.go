package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func rawFields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		t.Fatalf("failed to unmarshal test body: %v", err)
	}
	return fields
}

func TestStatusTokens(t *testing.T) {
	for _, s := range TaskStatusList {
		if !s.Valid() {
			t.Errorf("listed status %q is not valid", s)
		}
		if _, ok := s.Color(); !ok {
			t.Errorf("listed status %q has no color", s)
		}
	}

	if TaskStatus("unknown").Valid() {
		t.Error("arbitrary token must not be a valid status")
	}
	if _, ok := TaskStatus("done").Color(); ok {
		t.Error("English token must not resolve to a color; wire values are Korean")
	}
}

func TestCreateTaskInputValidate(t *testing.T) {
	progress := 50
	status := StatusInProgress
	valid := CreateTaskInput{
		Category:  "인사",
		TaskTitle: "직원 등록",
		Progress:  &progress,
		Status:    &status,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name  string
		patch func(in *CreateTaskInput)
	}{
		{"empty category", func(in *CreateTaskInput) { in.Category = "  " }},
		{"empty title", func(in *CreateTaskInput) { in.TaskTitle = "" }},
		{"progress above range", func(in *CreateTaskInput) { p := 101; in.Progress = &p }},
		{"progress below range", func(in *CreateTaskInput) { p := -1; in.Progress = &p }},
		{"unknown status", func(in *CreateTaskInput) { s := TaskStatus("nope"); in.Status = &s }},
		{"bad start date", func(in *CreateTaskInput) { d := "2026/01/01"; in.StartDate = &d }},
		{"bad due date", func(in *CreateTaskInput) { d := "tomorrow"; in.DueDate = &d }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.patch(&in)
			err := in.Validate()
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBuildTaskUpdateSingleField(t *testing.T) {
	set, args, err := buildTaskUpdate(rawFields(t, `{"progress": 75}`))
	if err != nil {
		t.Fatalf("buildTaskUpdate failed: %v", err)
	}
	if set != "progress = $1" {
		t.Errorf("unexpected SET clause %q", set)
	}
	if len(args) != 1 || args[0] != 75 {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildTaskUpdateDeterministicOrder(t *testing.T) {
	set, args, err := buildTaskUpdate(rawFields(t,
		`{"status": "완료", "progress": 100, "category": "인사"}`))
	if err != nil {
		t.Fatalf("buildTaskUpdate failed: %v", err)
	}
	// clauses follow the fixed column order, not the JSON order
	if set != "category = $1, progress = $2, status = $3" {
		t.Errorf("unexpected SET clause %q", set)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "인사" || args[1] != 100 || args[2] != "완료" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildTaskUpdateExplicitNullClearsColumn(t *testing.T) {
	set, args, err := buildTaskUpdate(rawFields(t, `{"menu_name": null}`))
	if err != nil {
		t.Fatalf("buildTaskUpdate failed: %v", err)
	}
	if set != "menu_name = $1" {
		t.Errorf("unexpected SET clause %q", set)
	}
	if v, ok := args[0].(*string); !ok || v != nil {
		t.Errorf("null must map to a nil pointer, got %#v", args[0])
	}
}

func TestBuildTaskUpdateTrimsRequiredText(t *testing.T) {
	_, args, err := buildTaskUpdate(rawFields(t, `{"task_title": "  설계  "}`))
	if err != nil {
		t.Fatalf("buildTaskUpdate failed: %v", err)
	}
	if args[0] != "설계" {
		t.Errorf("title should be trimmed, got %#v", args[0])
	}
}

func TestBuildTaskUpdateRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no fields", `{}`},
		{"unknown field", `{"id": 9}`},
		{"immutable num", `{"num": 3}`},
		{"progress out of range", `{"progress": 101}`},
		{"progress not an integer", `{"progress": "high"}`},
		{"unknown status", `{"status": "pending"}`},
		{"empty category", `{"category": "  "}`},
		{"null title", `{"task_title": null}`},
		{"malformed date", `{"due_date": "01-02-2026"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := buildTaskUpdate(rawFields(t, tc.body))
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBuildTaskUpdateDateValue(t *testing.T) {
	set, args, err := buildTaskUpdate(rawFields(t, `{"start_date": "2026-09-01"}`))
	if err != nil {
		t.Fatalf("buildTaskUpdate failed: %v", err)
	}
	if !strings.HasPrefix(set, "start_date = $1") {
		t.Errorf("unexpected SET clause %q", set)
	}
	v, ok := args[0].(*string)
	if !ok || v == nil || *v != "2026-09-01" {
		t.Errorf("unexpected date arg %#v", args[0])
	}
}
