// Package dashboard holds the state behind the three chart surfaces: the cached full
// projection, each surface's timeframe and its one live chart.
package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/config"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/internal/output"
)

// ErrUnknownSurface is returned for surfaces other than mortgage, portfolio and net_worth.
var ErrUnknownSurface = output.ErrUnknownSurface

// Dashboard recalculates on input changes and re-renders from the cache on timeframe
// changes. It is safe for concurrent use.
type Dashboard struct {
	mu sync.Mutex

	parser   *config.InputParser
	engine   *calculation.Engine
	opts     domain.EngineOptions
	renderer output.Renderer
	logger   calculation.Logger

	current    *domain.Projection
	timeframes map[domain.Surface]calculation.Timeframe
	charts     map[domain.Surface]output.ChartHandle
}

// New creates a dashboard that simulates with opts and draws through renderer.
// Every surface starts with the AllTime timeframe.
func New(renderer output.Renderer, opts domain.EngineOptions) *Dashboard {
	d := &Dashboard{
		parser:     config.NewInputParser(),
		engine:     calculation.NewEngine(),
		opts:       opts,
		renderer:   renderer,
		logger:     calculation.NopLogger{},
		timeframes: make(map[domain.Surface]calculation.Timeframe, len(domain.AllSurfaces)),
		charts:     make(map[domain.Surface]output.ChartHandle, len(domain.AllSurfaces)),
	}
	for _, s := range domain.AllSurfaces {
		d.timeframes[s] = calculation.AllTime
	}
	return d
}

// SetLogger sets the logger for the dashboard and its engine. If nil is provided, a no-op logger is used.
func (d *Dashboard) SetLogger(l calculation.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l == nil {
		l = calculation.NopLogger{}
	}
	d.logger = l
	d.engine.SetLogger(l)
}

// Recalculate parses raw, re-runs the simulation and re-renders every surface.
// Invalid input leaves the previous projection and charts in place; the error is
// returned for inspection only.
func (d *Dashboard) Recalculate(raw domain.RawInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	in, err := d.parser.ParseRawInput(raw)
	if err != nil {
		d.logger.Warnf("keeping previous projection: %v", err)
		return err
	}
	p, err := d.engine.Simulate(in, d.opts)
	if err != nil {
		d.logger.Warnf("keeping previous projection: %v", err)
		return err
	}

	d.current = p
	var errs []error
	for _, s := range domain.AllSurfaces {
		if err := d.renderLocked(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetTimeframe changes one surface's timeframe and re-renders that surface from the
// cached projection. Before the first successful Recalculate it only records the choice.
func (d *Dashboard) SetTimeframe(surface domain.Surface, tf calculation.Timeframe) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.timeframes[surface]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	d.timeframes[surface] = tf
	if d.current == nil {
		return nil
	}
	return d.renderLocked(surface)
}

// Timeframe returns a surface's current timeframe.
func (d *Dashboard) Timeframe(surface domain.Surface) (calculation.Timeframe, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tf, ok := d.timeframes[surface]
	if !ok {
		return calculation.Timeframe{}, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	return tf, nil
}

// Projection returns the cached full projection, or nil before the first successful run.
func (d *Dashboard) Projection() *domain.Projection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// View returns the cached projection truncated to a surface's timeframe.
func (d *Dashboard) View(surface domain.Surface) (*domain.Projection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tf, ok := d.timeframes[surface]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	return calculation.Project(d.current, tf), nil
}

// Chart returns the live chart handle for a surface, or nil when none has been rendered.
func (d *Dashboard) Chart(surface domain.Surface) output.ChartHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.charts[surface]
}

// Close releases every live chart.
func (d *Dashboard) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	for _, s := range domain.AllSurfaces {
		if err := d.releaseLocked(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// renderLocked releases the surface's previous chart, then renders the new one.
func (d *Dashboard) renderLocked(surface domain.Surface) error {
	if err := d.releaseLocked(surface); err != nil {
		d.logger.Warnf("release %s chart: %v", surface, err)
	}
	view := calculation.Project(d.current, d.timeframes[surface])
	chart, err := output.ChartFor(surface, view)
	if err != nil {
		return err
	}
	h, err := d.renderer.Render(chart)
	if err != nil {
		d.logger.Errorf("render %s chart: %v", surface, err)
		return fmt.Errorf("render %s chart: %w", surface, err)
	}
	d.charts[surface] = h
	d.logger.Debugf("rendered %s chart %s with %d points (timeframe %s)", surface, h.ID(), len(chart.Labels), d.timeframes[surface])
	return nil
}

func (d *Dashboard) releaseLocked(surface domain.Surface) error {
	h, ok := d.charts[surface]
	if !ok {
		return nil
	}
	delete(d.charts, surface)
	return h.Release()
}
