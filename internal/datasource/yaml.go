package datasource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
)

type yamlDocument struct {
	Nodes []map[string]any `yaml:"nodes"`
	Links []map[string]any `yaml:"links"`
	Edges []map[string]any `yaml:"edges"`
}

// loadYAML reads a single YAML document carrying both streams.
func loadYAML(path string) (normalize.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return normalize.Input{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return normalize.Input{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var in normalize.Input
	for _, obj := range doc.Nodes {
		in.NodeRecords = append(in.NodeRecords, toRecord(obj))
	}
	for _, obj := range doc.Links {
		in.LinkRecords = append(in.LinkRecords, toRecord(obj))
	}
	for _, obj := range doc.Edges {
		in.LinkRecords = append(in.LinkRecords, toRecord(obj))
	}
	return in, nil
}
