package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// edgeFixture describes one edge to score:
//
//	source: {highway: traffic_signals}
//	target: {}
//	way: {highway: residential, surface: asphalt}
//	globals: {way.length: 120}
type edgeFixture struct {
	Source  map[string]string  `yaml:"source"`
	Target  map[string]string  `yaml:"target"`
	Way     map[string]string  `yaml:"way"`
	Globals map[string]float32 `yaml:"globals"`
}

func loadEdge(path string) (*edgeFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var edge edgeFixture
	if err := yaml.Unmarshal(data, &edge); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &edge, nil
}

// words lists every tag key and value of the fixture.
func (e *edgeFixture) words() []string {
	var out []string
	for _, tags := range []map[string]string{e.Source, e.Target, e.Way} {
		for k, v := range tags {
			out = append(out, k, v)
		}
	}
	return out
}

func (e *edgeFixture) lookup(name string) (float32, bool) {
	v, ok := e.Globals[name]
	return v, ok
}
