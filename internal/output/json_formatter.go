package output

import (
	"encoding/json"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// JSONFormatter serializes the projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(p *domain.Projection) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
