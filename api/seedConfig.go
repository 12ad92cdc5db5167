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
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/mapboot/mapboot/templates"
)

// SeedConfig is the subset of a `seed.yaml` file needed for pre-flight
// reference checks against the proxy configuration.
type SeedConfig struct {
	Seeds    map[string]*SeedTask    `yaml:"seeds"`
	Cleanups map[string]*CleanupTask `yaml:"cleanups"`
}

type SeedTask struct {
	Caches        []string    `yaml:"caches"`
	Grids         []string    `yaml:"grids"`
	Levels        *SeedLevels `yaml:"levels"`
	RefreshBefore *TimeDelta  `yaml:"refresh_before"`
}

type CleanupTask struct {
	Caches       []string    `yaml:"caches"`
	Grids        []string    `yaml:"grids"`
	Levels       *SeedLevels `yaml:"levels"`
	RemoveBefore *TimeDelta  `yaml:"remove_before"`
}

type SeedLevels struct {
	From *int `yaml:"from"`
	To   *int `yaml:"to"`
}

type TimeDelta struct {
	Weeks   *int `yaml:"weeks"`
	Days    *int `yaml:"days"`
	Hours   *int `yaml:"hours"`
	Minutes *int `yaml:"minutes"`
}

func (d *TimeDelta) isEmpty() bool {
	return d.Weeks == nil && d.Days == nil && d.Hours == nil && d.Minutes == nil
}

func createSeedConfigFromYamlContent(yamlContent []byte) (*SeedConfig, error) {
	config := SeedConfig{}
	if err := yaml.Unmarshal(yamlContent, &config); err != nil {
		return nil, fmt.Errorf("unable to parse seed configuration: %w", err)
	}
	return &config, nil
}

// CreateSeedConfigFromYaml loads a `seed.yaml` file.
func CreateSeedConfigFromYaml(filename string) (*SeedConfig, error) {
	yamlContent, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return createSeedConfigFromYamlContent(yamlContent)
}

// CreateDefaultSeedConfig returns the seeding configuration shipped in the image.
func CreateDefaultSeedConfig() *SeedConfig {
	config, err := createSeedConfigFromYamlContent([]byte(templates.SEED_YML))
	if err != nil {
		panic(err)
	}
	return config
}

// SeedNames returns the names of the configured seed tasks, sorted.
func (c *SeedConfig) SeedNames() []string {
	names := make([]string, 0, len(c.Seeds))
	for name := range c.Seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CleanupNames returns the names of the configured cleanup tasks, sorted.
func (c *SeedConfig) CleanupNames() []string {
	names := make([]string, 0, len(c.Cleanups))
	for name := range c.Cleanups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkTaskReferences(kind string, owner string, caches []string, grids []string,
	proxyConfig *ProxyConfig) []Reference {
	references := []Reference{}
	for _, cache := range caches {
		references = append(references, Reference{
			Kind:   kind + " cache",
			Owner:  owner,
			Target: cache,
			OK:     proxyConfig.hasCache(cache),
		})
	}
	for _, grid := range grids {
		references = append(references, Reference{
			Kind:   kind + " grid",
			Owner:  owner,
			Target: grid,
			OK:     proxyConfig.hasGrid(grid),
		})
	}
	return references
}

// CheckReferences resolves every seed and cleanup reference against the proxy
// configuration.
func (c *SeedConfig) CheckReferences(proxyConfig *ProxyConfig) []Reference {
	references := []Reference{}
	for name, seed := range c.Seeds {
		references = append(references,
			checkTaskReferences("seed", name, seed.Caches, seed.Grids, proxyConfig)...)
	}
	for name, cleanup := range c.Cleanups {
		references = append(references,
			checkTaskReferences("cleanup", name, cleanup.Caches, cleanup.Grids, proxyConfig)...)
	}
	return references
}

// Validate reports all structural problems and broken references of the
// seeding configuration.
func (c *SeedConfig) Validate(proxyConfig *ProxyConfig) []error {
	errs := []error{}

	if len(c.Seeds) == 0 && len(c.Cleanups) == 0 {
		errs = append(errs, fmt.Errorf("no seeds and no cleanups defined"))
	}

	for name, seed := range c.Seeds {
		if len(seed.Caches) == 0 {
			errs = append(errs, fmt.Errorf("seed %q has no caches", name))
		}
		if seed.Levels != nil && seed.Levels.From != nil && seed.Levels.To != nil &&
			*seed.Levels.From > *seed.Levels.To {
			errs = append(errs, fmt.Errorf(
				"seed %q has an inverted levels range (%d > %d)",
				name, *seed.Levels.From, *seed.Levels.To,
			))
		}
	}

	for name, cleanup := range c.Cleanups {
		if len(cleanup.Caches) == 0 {
			errs = append(errs, fmt.Errorf("cleanup %q has no caches", name))
		}
		if cleanup.RemoveBefore != nil && cleanup.RemoveBefore.isEmpty() {
			errs = append(errs, fmt.Errorf("cleanup %q has an empty remove_before", name))
		}
	}

	for _, reference := range c.CheckReferences(proxyConfig) {
		if !reference.OK {
			errs = append(errs, fmt.Errorf(
				"%s %q of %q is not defined",
				reference.Kind, reference.Target, reference.Owner,
			))
		}
	}

	return errs
}
