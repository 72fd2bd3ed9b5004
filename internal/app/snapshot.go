package app

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/hylla/syssla/internal/domain"
)

// SnapshotVersion defines the snapshot wire-format identifier.
const SnapshotVersion = "syssla.snapshot.v1"

// Snapshot is the portable export of the full application state.
type Snapshot struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Theme      domain.Theme  `json:"theme"`
	Tasks      []domain.Task `json:"tasks"`
}

// ExportSnapshot captures the current collection and theme.
func (s *Service) ExportSnapshot() Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock(),
		Theme:      s.theme,
		Tasks:      s.Tasks(),
	}
}

// ImportSnapshot replaces the collection and theme with snapshot contents and
// persists both. Tasks are revalidated so a hand-edited snapshot cannot smuggle
// in empty text or duplicate ids.
func (s *Service) ImportSnapshot(ctx context.Context, snap Snapshot) error {
	if snap.Version != "" && snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %q", snap.Version)
	}

	seen := make(map[string]struct{}, len(snap.Tasks))
	tasks := make([]domain.Task, 0, len(snap.Tasks))
	for i, raw := range snap.Tasks {
		task, err := domain.NewTask(raw.ID, raw.Text, raw.CreatedAt)
		if err != nil {
			return fmt.Errorf("snapshot task %d: %w", i, err)
		}
		if _, dup := seen[task.ID]; dup {
			return fmt.Errorf("snapshot task %d: duplicate id %s", i, task.ID)
		}
		seen[task.ID] = struct{}{}
		task.Completed = raw.Completed
		tasks = append(tasks, task)
	}

	previous := s.tasks
	s.tasks = tasks
	if err := s.persistTasks(ctx); err != nil {
		s.tasks = previous
		return err
	}
	if snap.Theme != "" {
		if _, err := s.SetTheme(ctx, domain.ParseTheme(string(snap.Theme))); err != nil {
			return err
		}
	}
	return nil
}

// RenderHTML renders a snapshot as a standalone HTML page. Task text passes
// through html.EscapeString, so stored text can never inject markup.
func RenderHTML(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>syssla tasks</title></head>\n")
	fmt.Fprintf(&b, "<body class=%q>\n<ul>\n", "theme-"+string(snap.Theme))
	for _, task := range snap.Tasks {
		state := "pending"
		mark := "☐"
		if task.Completed {
			state = "completed"
			mark = "☑"
		}
		fmt.Fprintf(&b, "  <li class=%q>%s %s</li>\n", state, mark, html.EscapeString(task.Text))
	}
	b.WriteString("</ul>\n</body>\n</html>\n")
	return b.String()
}
