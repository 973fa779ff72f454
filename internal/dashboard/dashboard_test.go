package dashboard

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validInput = domain.RawInput{
	Principal:                     "200000",
	AnnualRatePercent:             "5",
	TermYears:                     "15",
	InitialPortfolio:              "300000",
	AnnualMarketReturnPercent:     "6",
	InitialHomeValue:              "250000",
	AnnualHomeAppreciationPercent: "3",
}

// strictRenderer fails the test if a surface is rendered while its previous chart is live.
type strictRenderer struct {
	t    *testing.T
	mu   sync.Mutex
	live map[domain.Surface]int
	seen map[domain.Surface][]int // label count per render
}

func newStrictRenderer(t *testing.T) *strictRenderer {
	return &strictRenderer{t: t, live: map[domain.Surface]int{}, seen: map[domain.Surface][]int{}}
}

func (r *strictRenderer) Render(c output.Chart) (output.ChartHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live[c.Surface] != 0 {
		r.t.Errorf("%s rendered while a previous chart is still live", c.Surface)
	}
	r.live[c.Surface]++
	r.seen[c.Surface] = append(r.seen[c.Surface], len(c.Labels))
	return &strictHandle{r: r, surface: c.Surface, id: fmt.Sprintf("%s-%d", c.Surface, len(r.seen[c.Surface]))}, nil
}

func (r *strictRenderer) renders(s domain.Surface) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.seen[s]...)
}

type strictHandle struct {
	r       *strictRenderer
	surface domain.Surface
	id      string
}

func (h *strictHandle) ID() string { return h.id }

func (h *strictHandle) Release() error {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	h.r.live[h.surface]--
	return nil
}

type countingLogger struct {
	calculation.NopLogger
	mu    sync.Mutex
	warns int
}

func (l *countingLogger) Warnf(string, ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns++
}

func TestRecalculateRendersEverySurface(t *testing.T) {
	r := output.NewMemoryRenderer()
	d := New(r, domain.DefaultEngineOptions())

	require.NoError(t, d.Recalculate(validInput))
	p := d.Projection()
	require.NotNil(t, p)
	assert.Len(t, p.Samples, 60)
	assert.Equal(t, 3, r.Live())

	for _, s := range domain.AllSurfaces {
		h := d.Chart(s)
		require.NotNil(t, h, s)
		c, ok := r.Chart(h.ID())
		require.True(t, ok)
		assert.Equal(t, s, c.Surface)
		assert.Len(t, c.Labels, 60)
	}

	// A second run replaces, not accumulates, the charts.
	require.NoError(t, d.Recalculate(validInput))
	assert.Equal(t, 3, r.Live())
	assert.Equal(t, 6, r.Rendered())
}

func TestRecalculateKeepsStateOnInvalidInput(t *testing.T) {
	r := output.NewMemoryRenderer()
	logger := &countingLogger{}
	d := New(r, domain.DefaultEngineOptions())
	d.SetLogger(logger)

	require.NoError(t, d.Recalculate(validInput))
	before := d.Projection()
	mortgage := d.Chart(domain.SurfaceMortgage)

	bad := validInput
	bad.Principal = "zero"
	err := d.Recalculate(bad)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)

	bad = validInput
	bad.ExtraMonthlyPayment = "-50"
	assert.ErrorIs(t, d.Recalculate(bad), calculation.ErrInvalidInput)

	assert.Same(t, before, d.Projection())
	assert.Same(t, mortgage, d.Chart(domain.SurfaceMortgage))
	assert.Equal(t, 3, r.Live())
	assert.Equal(t, 3, r.Rendered())
	assert.Equal(t, 2, logger.warns)
}

func TestInvalidInputBeforeFirstRun(t *testing.T) {
	r := output.NewMemoryRenderer()
	d := New(r, domain.DefaultEngineOptions())

	assert.ErrorIs(t, d.Recalculate(domain.RawInput{}), calculation.ErrInvalidInput)
	assert.Nil(t, d.Projection())
	assert.Nil(t, d.Chart(domain.SurfaceNetWorth))
	assert.Zero(t, r.Rendered())
}

func TestSetTimeframeRerendersOnlyThatSurface(t *testing.T) {
	r := newStrictRenderer(t)
	d := New(r, domain.DefaultEngineOptions())
	require.NoError(t, d.Recalculate(validInput))
	full := d.Projection()

	require.NoError(t, d.SetTimeframe(domain.SurfaceMortgage, calculation.YearsTimeframe(15)))
	require.NoError(t, d.SetTimeframe(domain.SurfaceMortgage, calculation.YearsTimeframe(5)))

	assert.Equal(t, []int{60, 15, 5}, r.renders(domain.SurfaceMortgage))
	assert.Equal(t, []int{60}, r.renders(domain.SurfacePortfolio))
	assert.Equal(t, []int{60}, r.renders(domain.SurfaceNetWorth))
	assert.Same(t, full, d.Projection(), "timeframe changes never re-simulate")

	view, err := d.View(domain.SurfaceMortgage)
	require.NoError(t, err)
	assert.Len(t, view.Samples, 5)

	// Widening again restores from the cache, not from the narrowed view.
	require.NoError(t, d.SetTimeframe(domain.SurfaceMortgage, calculation.AllTime))
	view, err = d.View(domain.SurfaceMortgage)
	require.NoError(t, err)
	assert.Len(t, view.Samples, 60)
}

func TestTimeframeSurvivesRecalculate(t *testing.T) {
	r := newStrictRenderer(t)
	d := New(r, domain.DefaultEngineOptions())

	require.NoError(t, d.SetTimeframe(domain.SurfaceNetWorth, calculation.YearsTimeframe(10)))
	assert.Empty(t, r.renders(domain.SurfaceNetWorth), "nothing to render before the first run")

	require.NoError(t, d.Recalculate(validInput))
	assert.Equal(t, []int{10}, r.renders(domain.SurfaceNetWorth))

	tf, err := d.Timeframe(domain.SurfaceNetWorth)
	require.NoError(t, err)
	assert.Equal(t, 10, tf.Years())
}

func TestUnknownSurface(t *testing.T) {
	d := New(output.NewMemoryRenderer(), domain.DefaultEngineOptions())

	assert.ErrorIs(t, d.SetTimeframe("taxes", calculation.AllTime), ErrUnknownSurface)
	_, err := d.View("taxes")
	assert.ErrorIs(t, err, ErrUnknownSurface)
	_, err = d.Timeframe("taxes")
	assert.ErrorIs(t, err, ErrUnknownSurface)
}

func TestCloseReleasesEverything(t *testing.T) {
	r := output.NewMemoryRenderer()
	d := New(r, domain.DefaultEngineOptions())
	require.NoError(t, d.Recalculate(validInput))

	require.NoError(t, d.Close())
	assert.Zero(t, r.Live())
	assert.Nil(t, d.Chart(domain.SurfaceMortgage))
	require.NoError(t, d.Close(), "closing twice is harmless")
}

func TestConcurrentUse(t *testing.T) {
	r := output.NewMemoryRenderer()
	d := New(r, domain.DefaultEngineOptions())
	require.NoError(t, d.Recalculate(validInput))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = d.SetTimeframe(domain.AllSurfaces[n%3], calculation.YearsTimeframe(5+n))
		}(i)
		go func() {
			defer wg.Done()
			_ = d.Recalculate(validInput)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, r.Live())
	p := d.Projection()
	require.NotNil(t, p)
	assert.Len(t, p.Samples, 60)
}
