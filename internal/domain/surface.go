package domain

import (
	"fmt"
	"strings"
)

// Surface names one of the three independently-timeframed chart views.
type Surface string

const (
	SurfaceMortgage  Surface = "mortgage"
	SurfacePortfolio Surface = "portfolio"
	SurfaceNetWorth  Surface = "net_worth"
)

// AllSurfaces lists the surfaces in display order.
var AllSurfaces = []Surface{SurfaceMortgage, SurfacePortfolio, SurfaceNetWorth}

// Title returns the heading shown above a surface.
func (s Surface) Title() string {
	switch s {
	case SurfaceMortgage:
		return "Mortgage Amortization"
	case SurfacePortfolio:
		return "Investment Portfolio"
	case SurfaceNetWorth:
		return "Net Worth"
	}
	return string(s)
}

// ParseSurface accepts the canonical names plus dashed or spaced spellings.
func ParseSurface(s string) (Surface, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for _, known := range AllSurfaces {
		if Surface(n) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown surface %q", s)
}
