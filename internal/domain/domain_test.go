package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaskTrimsText(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	task, err := NewTask("t1", "  buy milk  ", now)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if task.Text != "buy milk" {
		t.Fatalf("unexpected text %q", task.Text)
	}
	if task.Completed {
		t.Fatalf("new task must start uncompleted")
	}
	if !task.CreatedAt.Equal(now) {
		t.Fatalf("unexpected createdAt %v", task.CreatedAt)
	}
}

func TestNewTaskRejectsEmptyText(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := NewTask("t1", text, now); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("NewTask(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
	if _, err := NewTask("", "buy milk", now); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("NewTask with empty id error = %v, want ErrInvalidID", err)
	}
}

func TestToggleFlipsCompletion(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	task, err := NewTask("t1", "buy milk", now)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	task.Toggle()
	if !task.Completed {
		t.Fatalf("expected completed after first toggle")
	}
	task.Toggle()
	if task.Completed {
		t.Fatalf("expected uncompleted after second toggle")
	}
}

func TestCreatedOnComparesDateOnly(t *testing.T) {
	now := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	sameDay := Task{CreatedAt: time.Date(2026, 8, 24, 0, 1, 0, 0, time.UTC)}
	if !sameDay.CreatedOn(now) {
		t.Fatalf("expected same-day createdAt to match")
	}
	dayBefore := Task{CreatedAt: time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC)}
	if dayBefore.CreatedOn(now) {
		t.Fatalf("expected previous-day createdAt to miss")
	}
}

func TestParseSectionDefaultsToAll(t *testing.T) {
	cases := map[string]Section{
		"all":         SectionAll,
		"Today":       SectionToday,
		" completed ": SectionCompleted,
		"archive":     SectionAll,
		"":            SectionAll,
	}
	for raw, want := range cases {
		if got := ParseSection(raw); got != want {
			t.Fatalf("ParseSection(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFilterTasks(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tasks := []Task{
		{ID: "t1", Text: "today open", CreatedAt: now},
		{ID: "t2", Text: "today done", Completed: true, CreatedAt: now},
		{ID: "t3", Text: "old open", CreatedAt: yesterday},
		{ID: "t4", Text: "old done", Completed: true, CreatedAt: yesterday},
	}

	all := FilterTasks(tasks, SectionAll, now)
	if len(all) != 2 {
		t.Fatalf("all filter returned %d tasks, want 2", len(all))
	}
	for _, task := range all {
		if task.Completed {
			t.Fatalf("all filter leaked completed task %s", task.ID)
		}
	}

	completed := FilterTasks(tasks, SectionCompleted, now)
	if len(completed) != 2 {
		t.Fatalf("completed filter returned %d tasks, want 2", len(completed))
	}
	for _, task := range completed {
		if !task.Completed {
			t.Fatalf("completed filter leaked open task %s", task.ID)
		}
	}

	today := FilterTasks(tasks, SectionToday, now)
	if len(today) != 1 || today[0].ID != "t1" {
		t.Fatalf("today filter returned %v, want only t1", today)
	}

	unknown := FilterTasks(tasks, Section("bogus"), now)
	if len(unknown) != len(all) {
		t.Fatalf("unknown section returned %d tasks, want all behavior (%d)", len(unknown), len(all))
	}
}

func TestFilterTasksKeepsOrder(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "t3", CreatedAt: now},
		{ID: "t2", CreatedAt: now},
		{ID: "t1", CreatedAt: now},
	}
	got := FilterTasks(tasks, SectionAll, now)
	for i, want := range []string{"t3", "t2", "t1"} {
		if got[i].ID != want {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestParseThemeAndNext(t *testing.T) {
	if ParseTheme("DARK") != ThemeDark {
		t.Fatalf("expected dark")
	}
	if ParseTheme("solarized") != ThemeLight {
		t.Fatalf("unknown theme must fall back to light")
	}
	if ThemeLight.Next() != ThemeDark || ThemeDark.Next() != ThemeLight {
		t.Fatalf("Next() must flip between the two themes")
	}
}
