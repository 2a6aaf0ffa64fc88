package homepage

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader reads a Homepage bookmarks.yaml or services.yaml file.
type Loader struct {
	filePath string
	mapper   *Mapper
}

// NewLoader creates a new Homepage loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		mapper:   NewMapper(),
	}
}

func (l *Loader) Path() string { return l.filePath }

// Load reads the file and maps it to groups. Both Homepage layouts are
// accepted: bookmarks.yaml entries are lists, services.yaml entries are maps.
func (l *Loader) Load() ([]Group, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return l.Parse(data)
}

func (l *Loader) Parse(data []byte) ([]Group, error) {
	// Strip Homepage template variables ({{HOMEPAGE_VAR_...}})
	data = stripTemplateVariables(data)

	var bookmarks BookmarksConfig
	bErr := yaml.Unmarshal(data, &bookmarks)
	if bErr == nil {
		return l.mapper.MapBookmarks(bookmarks)
	}

	var services ServicesConfig
	sErr := yaml.Unmarshal(data, &services)
	if sErr == nil {
		return l.mapper.MapServices(services)
	}

	return nil, fmt.Errorf("failed to parse import yaml: %w", errors.Join(bErr, sErr))
}

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
