package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hylla/syssla/internal/domain"
)

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	DefaultTheme domain.Theme
}

// Service owns the task collection: it loads it once (migrating the legacy
// format if present), mutates it through add/toggle/remove, persists the full
// collection after every mutation, and derives the filtered views and summary
// state the presentation layer renders. Domain-invalid inputs (empty text,
// unknown ids, unknown sections) are absorbed as no-ops; only storage failures
// surface as errors.
type Service struct {
	store KVStore
	idGen IDGenerator
	clock Clock

	tasks  []domain.Task
	theme  domain.Theme
	marked map[string]struct{}
}

// NewService constructs a new service. A nil clock falls back to time.Now; the
// id generator is injected so tests stay deterministic.
func NewService(store KVStore, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	theme := cfg.DefaultTheme
	if theme == "" {
		theme = domain.ThemeLight
	}

	return &Service{
		store:  store,
		idGen:  idGen,
		clock:  clock,
		theme:  theme,
		marked: map[string]struct{}{},
	}
}

// Load reads the persisted collection and theme. When only legacy-format data
// exists it is migrated to the current format, persisted, and the legacy key
// deleted; presence of current-format data short-circuits future migrations.
// Malformed persisted data fails the load rather than silently discarding it.
func (s *Service) Load(ctx context.Context) error {
	if err := s.loadTheme(ctx); err != nil {
		return err
	}

	raw, ok, err := s.store.Get(ctx, KeyTasks)
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	if ok {
		var tasks []domain.Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return fmt.Errorf("decode tasks: %w", err)
		}
		s.tasks = tasks
		return nil
	}

	migrated, ok, err := s.loadLegacy(ctx)
	if err != nil {
		return err
	}
	if ok {
		s.tasks = migrated
		return nil
	}

	s.tasks = []domain.Task{}
	return nil
}

// Add creates a task from raw input text and prepends it to the collection.
// Empty or whitespace-only input is a silent no-op and reports added=false.
func (s *Service) Add(ctx context.Context, text string) (domain.Task, bool, error) {
	task, err := domain.NewTask(s.idGen(), text, s.clock())
	if errors.Is(err, domain.ErrEmptyText) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, fmt.Errorf("create task: %w", err)
	}

	s.tasks = append([]domain.Task{task}, s.tasks...)
	if err := s.persistTasks(ctx); err != nil {
		s.tasks = s.tasks[1:]
		return domain.Task{}, false, err
	}
	return task, true, nil
}

// Toggle flips the completion flag of the task with the given id. An unknown
// id leaves the collection untouched and reports changed=false.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.tasks[idx].Toggle()
	if err := s.persistTasks(ctx); err != nil {
		// Keep the in-memory collection aligned with the store.
		s.tasks[idx].Toggle()
		return false, err
	}
	return true, nil
}

// MarkForRemoval flags a task for the view layer's removal transition without
// touching collection state. It reports whether the id exists.
func (s *Service) MarkForRemoval(id string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.marked[id] = struct{}{}
	return true
}

// IsMarkedForRemoval reports whether a task is awaiting commit.
func (s *Service) IsMarkedForRemoval(id string) bool {
	_, ok := s.marked[id]
	return ok
}

// CommitRemoval removes the task with the given id and persists the shrunk
// collection. An unknown id (including one already committed by an earlier
// call) is a no-op, which makes duplicate delete requests last-write-wins.
func (s *Service) CommitRemoval(ctx context.Context, id string) (bool, error) {
	delete(s.marked, id)
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if err := s.persistTasks(ctx); err != nil {
		s.tasks = append(s.tasks[:idx], append([]domain.Task{removed}, s.tasks[idx:]...)...)
		return false, err
	}
	return true, nil
}

// Tasks returns a copy of the full collection, most recently added first.
func (s *Service) Tasks() []domain.Task {
	return append([]domain.Task(nil), s.tasks...)
}

// Filtered returns the tasks visible under a section at the current time.
func (s *Service) Filtered(section domain.Section) []domain.Task {
	return domain.FilterTasks(s.tasks, section, s.clock())
}

// Theme returns the active display theme.
func (s *Service) Theme() domain.Theme {
	return s.theme
}

// ToggleTheme flips the display theme and persists the new value. The task
// collection is not touched.
func (s *Service) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return s.SetTheme(ctx, s.theme.Next())
}

// SetTheme applies and persists a display theme.
func (s *Service) SetTheme(ctx context.Context, theme domain.Theme) (domain.Theme, error) {
	if err := s.store.Set(ctx, KeyTheme, []byte(theme)); err != nil {
		return s.theme, fmt.Errorf("persist theme: %w", err)
	}
	s.theme = theme
	return s.theme, nil
}

// loadTheme reads the persisted theme, keeping the configured default when the
// key is absent and falling back to light for unrecognized stored values.
func (s *Service) loadTheme(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, KeyTheme)
	if err != nil {
		return fmt.Errorf("read theme: %w", err)
	}
	if ok {
		s.theme = domain.ParseTheme(string(raw))
	}
	return nil
}

// persistTasks writes the full collection under the current-format key so the
// store stays authoritative after every mutation.
func (s *Service) persistTasks(ctx context.Context) error {
	encoded, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.store.Set(ctx, KeyTasks, encoded); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// indexOf returns the position of a task by id, or -1.
func (s *Service) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
