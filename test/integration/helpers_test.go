package integration

import (
	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/config"
	"github.com/rpgo/mortgage-projector/internal/dashboard"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/internal/output"
)

// configTimeframes and newFileDashboard mirror how the charts command wires things up.
func configTimeframes(cfg *domain.Configuration) (map[domain.Surface]calculation.Timeframe, error) {
	return config.NewInputParser().Timeframes(cfg)
}

func newFileDashboard(dir string, opts domain.EngineOptions) *dashboard.Dashboard {
	return dashboard.New(&output.FileRenderer{Dir: dir}, opts)
}
