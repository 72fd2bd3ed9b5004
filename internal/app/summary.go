package app

import (
	"fmt"

	"github.com/hylla/syssla/internal/domain"
)

// Stats holds the derived counters displayed under the task list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Today     int
}

// Stats recomputes the summary counters from the current collection.
func (s *Service) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	now := s.clock()
	for _, task := range s.tasks {
		if task.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		if task.CreatedOn(now) {
			st.Today++
		}
	}
	return st
}

// SummaryText phrases the counters for a section. An empty collection always
// reads "0 tasks" regardless of section; wording agrees in number.
func SummaryText(st Stats, section domain.Section) string {
	if st.Total == 0 {
		return "0 tasks"
	}
	switch section {
	case domain.SectionToday:
		return countTasks(st.Today) + " for today"
	case domain.SectionCompleted:
		return countTasks(st.Completed) + " completed"
	default:
		return fmt.Sprintf("%s · %d completed · %d pending", countTasks(st.Total), st.Completed, st.Pending)
	}
}

// EmptyStateMessage returns the per-section message shown when a filter
// matches nothing. Unrecognized sections fall back to the all message.
func EmptyStateMessage(section domain.Section) string {
	switch section {
	case domain.SectionToday:
		return "🌅 Nothing planned for today."
	case domain.SectionCompleted:
		return "🎉 No completed tasks yet."
	default:
		return "✨ All clear. Add a task to get started."
	}
}

// countTasks renders a count with singular/plural agreement.
func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
