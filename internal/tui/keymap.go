package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit             key.Binding
	toggleHelp       key.Binding
	guide            key.Binding
	moveUp           key.Binding
	moveDown         key.Binding
	addTask          key.Binding
	toggleTask       key.Binding
	deleteTask       key.Binding
	nextSection      key.Binding
	prevSection      key.Binding
	sectionAll       key.Binding
	sectionToday     key.Binding
	sectionCompleted key.Binding
	toggleTheme      key.Binding
	yankText         key.Binding
}

// newKeyMap constructs the key map, honoring configured single-key overrides.
func newKeyMap(overrides KeyConfig) keyMap {
	return keyMap{
		quit:             key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		guide:            key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "guide")),
		moveUp:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:          bindingFor(overrides.AddTask, "n", "new task"),
		toggleTask:       bindingFor(overrides.ToggleTask, "space", "toggle done"),
		deleteTask:       bindingFor(overrides.DeleteTask, "d", "delete task"),
		nextSection:      bindingFor(overrides.NextSection, "tab", "next section"),
		prevSection:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous section")),
		sectionAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		sectionToday:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "today")),
		sectionCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		toggleTheme:      bindingFor(overrides.ToggleTheme, "T", "toggle theme"),
		yankText:         bindingFor(overrides.YankText, "y", "yank text"),
	}
}

// bindingFor builds a binding from an optional override key.
func bindingFor(override, fallback, desc string) key.Binding {
	k := strings.TrimSpace(override)
	if k == "" {
		k = fallback
	}
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.toggleTask, k.deleteTask, k.nextSection, k.toggleTheme, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.toggleTask, k.deleteTask, k.yankText},
		{k.nextSection, k.prevSection, k.sectionAll, k.sectionToday, k.sectionCompleted},
		{k.moveUp, k.moveDown, k.toggleTheme, k.guide, k.toggleHelp, k.quit},
	}
}
