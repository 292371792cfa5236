package ports

// Watcher observes a set of files for changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch replaces the watched file set.
	Watch(paths []string) error

	// Events yields the paths of files that changed on disk.
	Events() <-chan string

	// Errors yields watcher failures.
	Errors() <-chan error

	// Close stops the watcher and closes both channels.
	Close() error
}
