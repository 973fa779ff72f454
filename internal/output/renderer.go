package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ChartHandle is a live rendered chart. Release must be called exactly once before the
// surface is rendered again.
type ChartHandle interface {
	ID() string
	Release() error
}

// Renderer turns chart data into a live handle.
type Renderer interface {
	Render(c Chart) (ChartHandle, error)
}

// MemoryRenderer keeps rendered charts in memory and tracks which are still live.
type MemoryRenderer struct {
	mu       sync.Mutex
	next     int
	live     map[string]Chart
	rendered int
}

// NewMemoryRenderer creates an empty MemoryRenderer.
func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{live: make(map[string]Chart)}
}

func (r *MemoryRenderer) Render(c Chart) (ChartHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.rendered++
	id := fmt.Sprintf("%s-%d", c.Surface, r.next)
	r.live[id] = c
	return &memoryHandle{id: id, r: r}, nil
}

// Live returns the number of charts rendered and not yet released.
func (r *MemoryRenderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Rendered returns the total number of Render calls.
func (r *MemoryRenderer) Rendered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rendered
}

// Chart returns the chart behind a live handle id.
func (r *MemoryRenderer) Chart(id string) (Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.live[id]
	return c, ok
}

type memoryHandle struct {
	id string
	r  *MemoryRenderer
}

func (h *memoryHandle) ID() string { return h.id }

func (h *memoryHandle) Release() error {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	if _, ok := h.r.live[h.id]; !ok {
		return fmt.Errorf("chart %s already released", h.id)
	}
	delete(h.r.live, h.id)
	return nil
}

// FileRenderer writes each chart as a standalone HTML page in Dir. Releasing the
// handle removes the file.
type FileRenderer struct {
	Dir string

	mu   sync.Mutex
	next int
}

func (r *FileRenderer) Render(c Chart) (ChartHandle, error) {
	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", c.Surface, err)
	}

	r.mu.Lock()
	r.next++
	path := filepath.Join(r.Dir, fmt.Sprintf("%s_chart_%d.html", c.Surface, r.next))
	r.mu.Unlock()

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s chart: %w", c.Surface, err)
	}
	return fileHandle(path), nil
}

type fileHandle string

func (h fileHandle) ID() string { return string(h) }

func (h fileHandle) Release() error { return os.Remove(string(h)) }
