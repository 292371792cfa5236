package ports

import "go.trai.ch/weft/internal/core/domain"

// ConfigLoader loads the compiler configuration for a working directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at cwd. A missing configuration
	// file yields the defaults, not an error.
	Load(cwd string) (*domain.Options, error)
}
