package manip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/manip/manipulator"
	"github.com/gekko3d/manip/scene"
)

// LoadConfig reads a YAML or TOML manipulator config. Fields missing from
// the file keep their DefaultConfig values.
func LoadConfig(path string) (manipulator.Config, error) {
	cfg := manipulator.DefaultConfig()
	if err := decodeFile(path, &cfg); err != nil {
		return manipulator.DefaultConfig(), fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// LoadScene reads a YAML or TOML scene description and builds its graph.
func LoadScene(path string) (scene.Description, *scene.Graph, error) {
	var d scene.Description
	if err := decodeFile(path, &d); err != nil {
		return d, nil, fmt.Errorf("load scene: %w", err)
	}
	g, err := d.Build()
	if err != nil {
		return d, nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return d, g, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	case ".toml":
		err = toml.Unmarshal(data, out)
	default:
		return fmt.Errorf("%s: unsupported format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
