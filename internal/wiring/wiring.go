// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pkgscope/internal/adapters/fs"
	_ "go.trai.ch/pkgscope/internal/adapters/logger"
	_ "go.trai.ch/pkgscope/internal/adapters/policy"
	_ "go.trai.ch/pkgscope/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/pkgscope/internal/app"
)
