package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the projection in the named format to a timestamped file in dir
// and returns the paths written. The pseudo-format "all" writes the console table and
// the detailed CSV.
func GenerateReport(p *domain.Projection, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, p, dir, FileExtension(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "all":
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, p, dir, FileExtension(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	default:
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
}

// SaveConfiguration writes a scenario file as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
