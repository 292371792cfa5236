package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weft/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/syntax"             //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/transpile"          //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/adapters/watch"              //nolint:depguard // Wired in app layer
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/compile"
	"go.trai.ch/weft/internal/engine/resolve"
)

// ComponentsNodeID is the unique identifier for the app components node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			fs.ResolverNodeID,
			fs.ReaderNodeID,
			syntax.NodeID,
			progrock.NodeID,
			watch.NodeID,
		},
		Run: runComponentsNode,
	})
}

// runComponentsNode assembles the session-scoped components on top of the
// graft-provided adapters. The session, engines and facade share one build
// session created here.
func runComponentsNode(ctx context.Context) (*Components, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.PathResolver](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.SourceReader](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.ImportExtractor](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	options, err := loader.Load(".")
	if err != nil {
		return nil, err
	}

	session := domain.NewSession()
	semantic := transpile.NewEngine(session, options)
	engine := resolve.NewEngine(session, reader, extractor, log)
	compiler := compile.NewCompiler(session, options, engine, resolver, semantic, telemetry, log)

	return &Components{
		App:     New(session, options, compiler, reader, watcher, log),
		Session: session,
		Options: options,
		Logger:  log,
	}, nil
}
