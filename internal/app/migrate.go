package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hylla/syssla/internal/domain"
)

// legacyList is the prior persisted shape: two parallel lists of plain text
// with no ids or timestamps.
type legacyList struct {
	Todo      []string `json:"todo"`
	Completed []string `json:"completed"`
}

// loadLegacy attempts the one-time legacy migration. When legacy data exists,
// every entry becomes a task with a fresh unique id and createdAt set to the
// migration time; the result is persisted under the current key and the legacy
// key deleted, so the migration never runs twice.
func (s *Service) loadLegacy(ctx context.Context) ([]domain.Task, bool, error) {
	raw, ok, err := s.store.Get(ctx, KeyLegacy)
	if err != nil {
		return nil, false, fmt.Errorf("read legacy tasks: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var legacy legacyList
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, false, fmt.Errorf("decode legacy tasks: %w", err)
	}

	now := s.clock()
	tasks := make([]domain.Task, 0, len(legacy.Todo)+len(legacy.Completed))
	for _, text := range legacy.Todo {
		task, err := domain.NewTask(s.idGen(), text, now)
		if err != nil {
			// Blank legacy entries carry no information worth migrating.
			continue
		}
		tasks = append(tasks, task)
	}
	for _, text := range legacy.Completed {
		task, err := domain.NewTask(s.idGen(), text, now)
		if err != nil {
			continue
		}
		task.Completed = true
		tasks = append(tasks, task)
	}

	s.tasks = tasks
	if err := s.persistTasks(ctx); err != nil {
		return nil, false, err
	}
	if err := s.store.Delete(ctx, KeyLegacy); err != nil {
		return nil, false, fmt.Errorf("delete legacy key: %w", err)
	}
	return tasks, true, nil
}
