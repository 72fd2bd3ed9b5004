package app

import "context"

// Storage keys used by the service. The legacy key is read once, migrated, and
// deleted; it is never written again.
const (
	KeyTasks  = "todos"
	KeyLegacy = "todoList"
	KeyTheme  = "theme"
)

// KVStore is the durable key-value store backing the task collection. Get
// reports presence separately from errors so a missing key is not a failure.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
