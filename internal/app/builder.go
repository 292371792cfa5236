package app

import (
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App     *App
	Session *domain.Session
	Options *domain.Options
	Logger  ports.Logger
}
