// Package yaml loads the documentation source configuration from
// sources.yaml.
package yaml

import (
	"os"

	"github.com/apidex/apidex"
	"gopkg.in/yaml.v3"
)

// sourcesFile is the structure of a sources.yaml document.
type sourcesFile struct {
	Sources []apidex.Source `yaml:"sources"`
}

// LoadSources reads and validates the source list from the given path.
func LoadSources(path string) ([]apidex.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apidex.Errorf(apidex.ENOTFOUND, "sources file not found: %s", path)
		}
		return nil, err
	}
	return ParseSources(data)
}

// ParseSources decodes and validates a sources.yaml document.
func ParseSources(data []byte) ([]apidex.Source, error) {
	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apidex.Errorf(apidex.EINVALID, "parsing sources config: %v", err)
	}

	for i := range file.Sources {
		if err := file.Sources[i].Validate(); err != nil {
			return nil, err
		}
	}

	return file.Sources, nil
}
