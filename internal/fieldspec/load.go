package fieldspec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Load reads a field config from a YAML or JSON file, chosen by extension.
// Field names are preserved verbatim, including case and spaces.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fieldspec: read %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, eris.Wrapf(err, "fieldspec: parse yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, eris.Wrapf(err, "fieldspec: parse json %s", path)
		}
	}

	return cfg, nil
}
