package watcher

import "context"

// Watcher monitors the input directory for new presentations
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one presentation that appeared in the input dir
type EventHandler func(ctx context.Context, filePath string) error
