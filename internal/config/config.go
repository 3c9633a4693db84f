/*
File    : modlc/internal/config/config.go

Package config loads the driver's project file: a search path for .mod
files and a list of diagnostic codes to suppress from the renderer's
output (never from the Module itself — §7's first-error-wins policy is a
core invariant, not a presentation choice; suppressing a code only hides
it from the terminal report, it never changes Module.Status()).

Grounded on vovakirdan-surge's use of BurntSushi/toml for project
configuration; the driver also accepts an equivalent .yaml file via
gopkg.in/yaml.v3 (the second project-config format the teacher already
carries a dependency on, indirectly, unused in go-mix itself).
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Project is the driver's project-file shape, common to both the .toml
// and .yaml forms.
type Project struct {
	Include         []string `toml:"include" yaml:"include"`
	SuppressedCodes []string `toml:"suppress" yaml:"suppress"`
}

// Suppresses reports whether code has been marked suppressed in this
// project file.
func (p *Project) Suppresses(code string) bool {
	for _, c := range p.SuppressedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Load reads a project file at path, dispatching on its extension:
// ".yaml"/".yml" decodes with yaml.v3, anything else (including the
// canonical "nmodlfront.toml") decodes with BurntSushi/toml.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var proj Project
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &proj); err != nil {
			return nil, err
		}
		return &proj, nil
	}
	if _, err := toml.Decode(string(data), &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// Default returns an empty Project: every .mod file named on the command
// line, no suppressed codes.
func Default() *Project {
	return &Project{}
}
