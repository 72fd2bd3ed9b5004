package tui

import "testing"

func TestKeyMapOverrides(t *testing.T) {
	keys := newKeyMap(KeyConfig{
		AddTask:    "a",
		DeleteTask: " x ",
	})

	if got := keys.addTask.Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected add override a, got %v", got)
	}
	if got := keys.deleteTask.Keys(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected trimmed delete override x, got %v", got)
	}
	if got := keys.toggleTask.Keys(); len(got) != 1 || got[0] != "space" {
		t.Fatalf("expected default toggle key, got %v", got)
	}
}

func TestKeyMapHelpListsCoreActions(t *testing.T) {
	keys := newKeyMap(KeyConfig{})
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("expected short help entries")
	}
	rows := keys.FullHelp()
	if len(rows) != 3 {
		t.Fatalf("expected 3 full-help columns, got %d", len(rows))
	}
}
