// Copyright 2025 The mapboot authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/mapboot/mapboot/templates"
)

// Grids MapProxy defines on its own, valid targets without a grids: entry.
var builtinGrids = map[string]bool{
	"GLOBAL_GEODETIC":    true,
	"GLOBAL_MERCATOR":    true,
	"GLOBAL_WEBMERCATOR": true,
}

// ProxyConfig is the subset of a `mapproxy.yaml` file needed for pre-flight
// reference checks. The wrapped service stays the authority on semantics,
// unknown keys are deliberately ignored.
type ProxyConfig struct {
	Services map[string]interface{} `yaml:"services"`
	Layers   []*Layer               `yaml:"layers"`
	Caches   map[string]*Cache      `yaml:"caches"`
	Sources  map[string]*Source     `yaml:"sources"`
	Grids    map[string]*Grid       `yaml:"grids"`
	Globals  *Globals               `yaml:"globals"`
}

type Layer struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title"`
	Sources []string `yaml:"sources"`
}

type Cache struct {
	Grids   []string `yaml:"grids"`
	Sources []string `yaml:"sources"`
}

type Source struct {
	Type string                 `yaml:"type"`
	Req  map[string]interface{} `yaml:"req"`
}

type Grid struct {
	Base string    `yaml:"base"`
	Srs  string    `yaml:"srs"`
	Bbox []float64 `yaml:"bbox"`
}

type Globals struct {
	Cache *GlobalsCache `yaml:"cache"`
}

type GlobalsCache struct {
	BaseDir string `yaml:"base_dir"`
	LockDir string `yaml:"lock_dir"`
}

// Reference is one name lookup mapproxy will perform when loading the
// configuration.
type Reference struct {
	Kind   string
	Owner  string
	Target string
	OK     bool
}

func createProxyConfigFromYamlContent(yamlContent []byte) (*ProxyConfig, error) {
	config := ProxyConfig{}
	if err := yaml.Unmarshal(yamlContent, &config); err != nil {
		return nil, fmt.Errorf("unable to parse mapproxy configuration: %w", err)
	}
	return &config, nil
}

// CreateProxyConfigFromYaml loads a `mapproxy.yaml` file.
func CreateProxyConfigFromYaml(filename string) (*ProxyConfig, error) {
	yamlContent, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return createProxyConfigFromYamlContent(yamlContent)
}

// CreateDefaultProxyConfig returns the configuration shipped in the image.
func CreateDefaultProxyConfig() *ProxyConfig {
	config, err := createProxyConfigFromYamlContent([]byte(templates.MAPPROXY_YML))
	if err != nil {
		panic(err)
	}
	return config
}

func (c *ProxyConfig) hasCache(name string) bool {
	_, ok := c.Caches[name]
	return ok
}

func (c *ProxyConfig) hasSource(name string) bool {
	_, ok := c.Sources[name]
	return ok
}

func (c *ProxyConfig) hasGrid(name string) bool {
	if builtinGrids[name] {
		return true
	}
	_, ok := c.Grids[name]
	return ok
}

// CheckReferences resolves every cross reference of the configuration.
func (c *ProxyConfig) CheckReferences() []Reference {
	references := []Reference{}

	for _, layer := range c.Layers {
		for _, source := range layer.Sources {
			references = append(references, Reference{
				Kind:   "layer source",
				Owner:  layer.Name,
				Target: source,
				OK:     c.hasCache(source) || c.hasSource(source),
			})
		}
	}

	for name, cache := range c.Caches {
		for _, source := range cache.Sources {
			references = append(references, Reference{
				Kind:   "cache source",
				Owner:  name,
				Target: source,
				OK:     c.hasSource(source) || c.hasCache(source),
			})
		}
		for _, grid := range cache.Grids {
			references = append(references, Reference{
				Kind:   "cache grid",
				Owner:  name,
				Target: grid,
				OK:     c.hasGrid(grid),
			})
		}
	}

	for name, grid := range c.Grids {
		if grid.Base == "" {
			continue
		}
		references = append(references, Reference{
			Kind:   "grid base",
			Owner:  name,
			Target: grid.Base,
			OK:     builtinGrids[grid.Base],
		})
	}

	return references
}

// Validate reports the structural problems and the broken references of the
// configuration, all of them, not only the first.
func (c *ProxyConfig) Validate() []error {
	errs := []error{}

	if len(c.Services) == 0 {
		errs = append(errs, fmt.Errorf("no services defined"))
	}
	if len(c.Layers) == 0 {
		errs = append(errs, fmt.Errorf("no layers defined"))
	}

	for layerIdx, layer := range c.Layers {
		if layer.Name == "" {
			errs = append(errs, fmt.Errorf("layer #%d has no name", layerIdx+1))
		}
		if len(layer.Sources) == 0 {
			errs = append(errs, fmt.Errorf("layer %q has no sources", layer.Name))
		}
	}

	for _, reference := range c.CheckReferences() {
		if !reference.OK {
			errs = append(errs, fmt.Errorf(
				"%s %q of %q is not defined",
				reference.Kind, reference.Target, reference.Owner,
			))
		}
	}

	return errs
}
