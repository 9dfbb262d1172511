package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.analysis.enabled") {
		closer, err := analysis.New(analysis.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			ID:        a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module analysis", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Analysis"] = closer
		}
	}
}
