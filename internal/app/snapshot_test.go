package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hylla/syssla/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	src := newTestService(newFakeStore(), now)
	if err := src.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	done, _, _ := src.Add(ctx, "done")
	if _, _, err := src.Add(ctx, "open"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := src.Toggle(ctx, done.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := src.SetTheme(ctx, domain.ThemeDark); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}

	snap := src.ExportSnapshot()
	if snap.Version != SnapshotVersion {
		t.Fatalf("unexpected snapshot version %q", snap.Version)
	}

	dst := newTestService(newFakeStore(), now)
	if err := dst.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := dst.ImportSnapshot(ctx, snap); err != nil {
		t.Fatalf("ImportSnapshot() error = %v", err)
	}
	if !reflect.DeepEqual(dst.Tasks(), src.Tasks()) {
		t.Fatalf("imported collection diverged")
	}
	if dst.Theme() != domain.ThemeDark {
		t.Fatalf("imported theme = %q, want dark", dst.Theme())
	}
}

func TestImportSnapshotRejectsBadData(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeStore(), now)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := svc.ImportSnapshot(ctx, Snapshot{Version: "other.v9"}); err == nil {
		t.Fatalf("expected unsupported-version error")
	}
	if err := svc.ImportSnapshot(ctx, Snapshot{Tasks: []domain.Task{{ID: "t1", Text: "  ", CreatedAt: now}}}); err == nil {
		t.Fatalf("expected empty-text rejection")
	}
	if err := svc.ImportSnapshot(ctx, Snapshot{Tasks: []domain.Task{
		{ID: "t1", Text: "a", CreatedAt: now},
		{ID: "t1", Text: "b", CreatedAt: now},
	}}); err == nil {
		t.Fatalf("expected duplicate-id rejection")
	}
}

func TestImportSnapshotRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestService(store, now)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, _, err := svc.Add(ctx, "survivor"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	before := svc.Tasks()
	stored := store.storedTasks(t)

	persistErr := errors.New("disk full")
	store.failSets(persistErr)
	snap := Snapshot{
		Version: SnapshotVersion,
		Tasks:   []domain.Task{{ID: "t1", Text: "incoming", CreatedAt: now}},
	}
	if err := svc.ImportSnapshot(ctx, snap); !errors.Is(err, persistErr) {
		t.Fatalf("ImportSnapshot() error = %v, want persist failure", err)
	}
	if !reflect.DeepEqual(svc.Tasks(), before) {
		t.Fatalf("collection changed after failed import:\n got %v\nwant %v", svc.Tasks(), before)
	}
	if !reflect.DeepEqual(store.storedTasks(t), stored) {
		t.Fatalf("store changed after failed import")
	}
}

func TestRenderHTMLEscapesText(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Version: SnapshotVersion,
		Theme:   domain.ThemeLight,
		Tasks: []domain.Task{
			{ID: "t1", Text: "<script>alert(1)</script>", CreatedAt: now},
			{ID: "t2", Text: "plain", Completed: true, CreatedAt: now},
		},
	}
	out := RenderHTML(snap)
	if strings.Contains(out, "<script>") {
		t.Fatalf("task text leaked markup:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("expected escaped text in output:\n%s", out)
	}
	if !strings.Contains(out, "class=\"completed\"") || !strings.Contains(out, "class=\"pending\"") {
		t.Fatalf("expected completion state classes:\n%s", out)
	}
}
