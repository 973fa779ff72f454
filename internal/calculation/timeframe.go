package calculation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TimeframeAll is the sentinel accepted by ParseTimeframe for "no truncation".
const TimeframeAll = "all"

// Timeframe is a display horizon: either everything or a whole number of years.
type Timeframe struct {
	years int
	all   bool
}

// AllTime keeps every sample.
var AllTime = Timeframe{all: true}

// YearsTimeframe keeps samples up to and including the given year.
func YearsTimeframe(years int) Timeframe {
	return Timeframe{years: years}
}

// ParseTimeframe accepts "all" (any case) or an integer year count. An empty string means all.
func ParseTimeframe(s string) (Timeframe, error) {
	v := strings.TrimSpace(s)
	if v == "" || strings.EqualFold(v, TimeframeAll) {
		return AllTime, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return Timeframe{}, fmt.Errorf("invalid timeframe %q: want %q or a whole number of years", s, TimeframeAll)
	}
	return YearsTimeframe(n), nil
}

// IsAll reports whether the timeframe keeps everything.
func (t Timeframe) IsAll() bool { return t.all }

// Years returns the horizon in years; meaningless when IsAll.
func (t Timeframe) Years() int { return t.years }

func (t Timeframe) String() string {
	if t.all {
		return TimeframeAll
	}
	return strconv.Itoa(t.years)
}

// Includes reports whether a sample at the given year falls inside the timeframe.
func (t Timeframe) Includes(year decimal.Decimal) bool {
	return t.all || year.LessThanOrEqual(decimal.NewFromInt(int64(t.years)))
}

// Project returns the view of p restricted to tf. AllTime returns p itself; otherwise
// a shallow copy with the retained samples in their original order. The simulation is
// never re-run, so projecting an already-projected series can only drop samples.
func Project(p *domain.Projection, tf Timeframe) *domain.Projection {
	if p == nil || tf.IsAll() {
		return p
	}
	out := *p
	out.Samples = make([]domain.Sample, 0, len(p.Samples))
	for _, s := range p.Samples {
		if tf.Includes(s.Year) {
			out.Samples = append(out.Samples, s)
		}
	}
	return &out
}

// ProjectLabels returns the indices of labels that fall inside tf. It is the label-only
// form of Project for callers holding bare "Year N" axes.
func ProjectLabels(labels []string, tf Timeframe) ([]int, error) {
	idx := make([]int, 0, len(labels))
	for i, l := range labels {
		if tf.IsAll() {
			idx = append(idx, i)
			continue
		}
		y, err := dateutil.ParseYearLabel(l)
		if err != nil {
			return nil, err
		}
		if tf.Includes(y) {
			idx = append(idx, i)
		}
	}
	return idx, nil
}
