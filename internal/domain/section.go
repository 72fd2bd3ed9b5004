package domain

import (
	"strings"
	"time"
)

// Section is the active display filter for the task list.
type Section string

// SectionAll and related constants define the selectable sections.
const (
	SectionAll       Section = "all"
	SectionToday     Section = "today"
	SectionCompleted Section = "completed"
)

// Sections lists the selectable sections in display order.
func Sections() []Section {
	return []Section{SectionAll, SectionToday, SectionCompleted}
}

// ParseSection normalizes raw input into a section. Unknown values behave as
// the all section rather than failing.
func ParseSection(raw string) Section {
	switch Section(strings.ToLower(strings.TrimSpace(raw))) {
	case SectionToday:
		return SectionToday
	case SectionCompleted:
		return SectionCompleted
	default:
		return SectionAll
	}
}

// FilterTasks returns the tasks visible under a section. It is a pure function
// of the collection, the section, and the current time; input order is kept.
func FilterTasks(tasks []Task, section Section, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		switch section {
		case SectionCompleted:
			if task.Completed {
				out = append(out, task)
			}
		case SectionToday:
			if !task.Completed && task.CreatedOn(now) {
				out = append(out, task)
			}
		default:
			if !task.Completed {
				out = append(out, task)
			}
		}
	}
	return out
}
