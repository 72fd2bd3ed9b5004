package domain

import (
	"strings"
	"time"
)

// Task is a single to-do item with text, a completion flag, and a creation time.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask constructs a validated task. Text is trimmed; empty text and empty
// ids are rejected with sentinel errors so callers can absorb them as no-ops.
func NewTask(id, text string, now time.Time) (Task, error) {
	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)

	if id == "" {
		return Task{}, ErrInvalidID
	}
	if text == "" {
		return Task{}, ErrEmptyText
	}

	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now,
	}, nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// CreatedOn reports whether the task was created on the same calendar day as
// now, compared date-only in now's location.
func (t Task) CreatedOn(now time.Time) bool {
	created := t.CreatedAt.In(now.Location())
	cy, cm, cd := created.Date()
	ny, nm, nd := now.Date()
	return cy == ny && cm == nm && cd == nd
}
