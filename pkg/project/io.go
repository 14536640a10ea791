package project

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML project description. Missing tempo and PPQ
// resolution fall back to the defaults.
func Load(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.Tempo < 0 {
		return nil, errors.New("project tempo must not be negative")
	}
	if p.Tempo == 0 {
		p.Tempo = DefaultTempo
	}
	if p.TicksPerQuarter == 0 {
		p.TicksPerQuarter = DefaultTicksPerQuarter
	}
	return &p, nil
}

// LoadFile reads and parses a project file.
func LoadFile(filename string) (*Project, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return Load(data)
}

// Save serializes the project to YAML.
func (p *Project) Save() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize project: %w", err)
	}
	return data, nil
}

// SaveFile writes the project to a YAML file.
func (p *Project) SaveFile(filename string) error {
	data, err := p.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
