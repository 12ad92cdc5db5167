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

package seeder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mapboot/mapboot/api"
	"github.com/mapboot/mapboot/initialization"
	"github.com/mapboot/mapboot/launcher"
	"github.com/mapboot/mapboot/utils"
)

type Options struct {
	// Dir is the mapproxy working directory
	Dir string
	// BinDir, when set, is where the mapproxy-seed executable lives instead
	// of the PATH
	BinDir string
	// ProxyConfigFile and SeedConfigFile are relative to Dir
	ProxyConfigFile string
	SeedConfigFile  string
	// Seeds and Cleanups restrict the run to the named tasks, empty means all
	Seeds    []string
	Cleanups []string
	// Concurrency is the number of concurrent seeding processes
	Concurrency uint
	DryRun      bool
	// Continue resumes an interrupted run from the progress file
	Continue bool
	// ProgressFile overrides where mapproxy-seed tracks its progress
	ProgressFile string
	// ReseedFile, when set, makes mapproxy-seed refresh tiles older than the
	// file's timestamp
	ReseedFile string
	// Retry reruns a failed seeding with exponentially growing waits
	Retry            bool
	Backoff          utils.Backoff
	EnvironmentFiles []string
}

var DefaultOptions = Options{
	Dir:             "/mapproxy",
	ProxyConfigFile: "mapproxy.yaml",
	SeedConfigFile:  "seed.yaml",
	Concurrency:     2,
	Backoff:         utils.DefaultBackoff(),
}

// ExtendDefaultOptions fills the zero values of options from DefaultOptions.
func ExtendDefaultOptions(options *Options) (*Options, error) {
	extendedOptions := Options{}
	if err := copier.Copy(&extendedOptions, options); err != nil {
		return nil, err
	}
	if err := mergo.Merge(&extendedOptions, DefaultOptions); err != nil {
		return nil, err
	}
	return &extendedOptions, nil
}

func (o *Options) binary(name string) string {
	if o.BinDir == "" {
		return name
	}
	return filepath.Join(o.BinDir, name)
}

// SeedTask is one mapproxy-seed invocation over the workspace configuration.
func SeedTask(options *Options) (launcher.Task, error) {
	args := []string{
		options.binary("mapproxy-seed"),
		"-f", options.ProxyConfigFile,
		"-s", options.SeedConfigFile,
	}
	if options.Concurrency > 0 {
		args = append(args, "-c", fmt.Sprintf("%d", options.Concurrency))
	}
	for _, seed := range options.Seeds {
		args = append(args, "--seed", seed)
	}
	for _, cleanup := range options.Cleanups {
		args = append(args, "--cleanup", cleanup)
	}
	if options.Continue {
		args = append(args, "--continue")
	}
	if options.ProgressFile != "" {
		args = append(args, "--progress-file", options.ProgressFile)
	}
	if options.ReseedFile != "" {
		args = append(args, "--reseed-file", options.ReseedFile)
	}
	if options.DryRun {
		args = append(args, "--dry-run")
	}

	task := launcher.Task{
		Name:  "mapproxy-seed",
		Args:  args,
		Dir:   options.Dir,
		Ready: utils.NewReadySignal(),
	}
	if len(options.EnvironmentFiles) > 0 {
		environment, err := utils.ComposeEnv(options.EnvironmentFiles...)
		if err != nil {
			return task, err
		}
		task.Environment = environment
	}
	return task, nil
}

// CheckSelection verifies that every seed and cleanup the options name exists
// in the seeding configuration, so a typo fails before a process is started.
func CheckSelection(options *Options, seedConfig *api.SeedConfig) error {
	missing := utils.NewIDFilter(options.Seeds).Missing(seedConfig.SeedNames())
	if len(missing) > 0 {
		return fmt.Errorf("unknown seeds selected: %s", strings.Join(missing, ", "))
	}
	missing = utils.NewIDFilter(options.Cleanups).Missing(seedConfig.CleanupNames())
	if len(missing) > 0 {
		return fmt.Errorf("unknown cleanups selected: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CacheSize sums the size of every file below dir. A missing directory counts
// as an empty cache.
func CacheSize(fs afero.Fs, dir string) (uint64, error) {
	var size uint64
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += uint64(info.Size())
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return size, nil
}

// prepare materializes the missing workspace files and reports seed tasks
// pointing at caches or grids the proxy configuration does not define.
func prepare(options *Options) error {
	created, err := initialization.EnsureFiles(afero.NewOsFs(), options.Dir)
	if err != nil {
		return err
	}
	for _, name := range created {
		log.WithField("file", name).Info("Created default configuration file")
	}

	proxyConfig, err := api.CreateProxyConfigFromYaml(filepath.Join(options.Dir, options.ProxyConfigFile))
	if err != nil {
		log.WithField("error", err).Warn("Unable to read mapproxy configuration")
		return nil
	}
	seedConfig, err := api.CreateSeedConfigFromYaml(filepath.Join(options.Dir, options.SeedConfigFile))
	if err != nil {
		log.WithField("error", err).Warn("Unable to read seed configuration")
		return nil
	}
	for _, issue := range seedConfig.Validate(proxyConfig) {
		log.WithField("issue", issue).Warn("Seed configuration issue")
	}

	return CheckSelection(options, seedConfig)
}

// Run executes the seeding in the foreground until it completes, fails or
// ctx is cancelled. With Retry set, a failed run is repeated with the
// configured backoff and the last failure is returned.
func Run(ctx context.Context, options Options) error {
	extendedOptions, err := ExtendDefaultOptions(&options)
	if err != nil {
		return err
	}
	if err := prepare(extendedOptions); err != nil {
		return err
	}

	start := time.Now()
	attempt := 0
	run := func() error {
		attempt++
		if attempt > 1 {
			log.WithField("attempt", attempt).Info("Retrying seeding")
		}
		task, err := SeedTask(extendedOptions)
		if err != nil {
			return err
		}
		return launcher.Launch(ctx, task)
	}

	log.WithField("dir", extendedOptions.Dir).Info("Starting seeding")
	if extendedOptions.Retry {
		err = utils.RetryWithBackoff(ctx, extendedOptions.Backoff, run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"took":     time.Since(start).Round(time.Second).String(),
		"attempts": attempt,
	}
	size, sizeErr := CacheSize(afero.NewOsFs(), filepath.Join(extendedOptions.Dir, "cache_data"))
	if sizeErr == nil {
		fields["cache"] = humanize.Bytes(size)
	}
	log.WithFields(fields).Info("Seeding completed")
	return nil
}
