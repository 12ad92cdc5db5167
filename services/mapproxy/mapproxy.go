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

package mapproxy

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
	"github.com/spf13/afero"

	"github.com/mapboot/mapboot/api"
	"github.com/mapboot/mapboot/initialization"
	"github.com/mapboot/mapboot/launcher"
	"github.com/mapboot/mapboot/utils"
)

// DevelopmentPort is the fixed port of the development server. The base mode
// does not bind a port itself, uwsgi.ini owns that.
const DevelopmentPort uint = 8080

const DefaultDir = "/mapproxy"

type Options struct {
	// Dir is the mapproxy working directory
	Dir string
	// BinDir, when set, is where the uwsgi and mapproxy executables live
	// instead of the PATH
	BinDir string
	// EnvironmentFiles are dotenv files layered over the inherited environment
	EnvironmentFiles []string
	// SkipInit disables the materialization of missing configuration files
	SkipInit bool
}

var DefaultOptions = Options{
	Dir: DefaultDir,
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

var uwsgiReadyRegex = regexp.MustCompile(`spawned uWSGI (master|worker \d+) process`)
var developReadyRegex = regexp.MustCompile(`Running on http://`)

func (o *Options) binary(name string) string {
	if o.BinDir == "" {
		return name
	}
	return filepath.Join(o.BinDir, name)
}

func (o *Options) task(name string, args ...string) (launcher.Task, error) {
	task := launcher.Task{
		Name:  name,
		Args:  args,
		Dir:   o.Dir,
		Ready: utils.NewReadySignal(),
	}
	if len(o.EnvironmentFiles) > 0 {
		environment, err := utils.ComposeEnv(o.EnvironmentFiles...)
		if err != nil {
			return task, err
		}
		task.Environment = environment
	}
	return task, nil
}

// BaseTask is the production server: mapproxy hosted by uwsgi, configured
// through the uwsgi.ini of the working directory.
func BaseTask(options *Options) (launcher.Task, error) {
	task, err := options.task("uwsgi", options.binary("uwsgi"), "--ini", "uwsgi.ini")
	if err != nil {
		return task, err
	}
	task.ReadyRegex = uwsgiReadyRegex
	return task, nil
}

// DevelopmentTask is the reloading development server on the fixed
// development port.
func DevelopmentTask(options *Options) (launcher.Task, error) {
	task, err := options.task(
		"mapproxy-util",
		options.binary("mapproxy-util"), "serve-develop",
		"-b", fmt.Sprintf("0.0.0.0:%d", DevelopmentPort),
		"mapproxy.yaml",
	)
	if err != nil {
		return task, err
	}
	task.ReadyRegex = developReadyRegex
	return task, nil
}

// prepare materializes the missing workspace files. Configuration issues are
// only reported, mapproxy itself is authoritative on what it accepts.
func prepare(options *Options) error {
	if options.SkipInit {
		log.Debug("Skipping configuration file materialization")
	} else {
		created, err := initialization.EnsureFiles(afero.NewOsFs(), options.Dir)
		if err != nil {
			return err
		}
		for _, name := range created {
			log.WithField("file", name).Info("Created default configuration file")
		}
	}

	proxyConfig, err := api.CreateProxyConfigFromYaml(filepath.Join(options.Dir, "mapproxy.yaml"))
	if err != nil {
		log.WithField("error", err).Warn("Unable to read mapproxy.yaml")
		return nil
	}
	for _, issue := range proxyConfig.Validate() {
		log.WithField("issue", issue).Warn("Configuration issue")
	}
	return nil
}

// RunBase runs the production server in the foreground until the process
// exits or ctx is cancelled.
func RunBase(ctx context.Context, options Options) error {
	extendedOptions, err := ExtendDefaultOptions(&options)
	if err != nil {
		return err
	}
	if err := prepare(extendedOptions); err != nil {
		return err
	}

	task, err := BaseTask(extendedOptions)
	if err != nil {
		return err
	}
	task.Ready.OnReady(func() {
		log.Info("mapproxy is serving")
	})

	log.WithField("dir", extendedOptions.Dir).Info("Starting mapproxy under uwsgi")
	return launcher.Launch(ctx, task)
}

// RunDevelopment runs the development server in the foreground until the
// process exits or ctx is cancelled.
func RunDevelopment(ctx context.Context, options Options) error {
	extendedOptions, err := ExtendDefaultOptions(&options)
	if err != nil {
		return err
	}
	if utils.IsTCPPortUsed(uint16(DevelopmentPort)) {
		return fmt.Errorf("port %d is already in use", DevelopmentPort)
	}
	if err := prepare(extendedOptions); err != nil {
		return err
	}

	task, err := DevelopmentTask(extendedOptions)
	if err != nil {
		return err
	}
	task.Ready.OnReady(func() {
		log.WithField("port", DevelopmentPort).Info("Development server is serving")
	})

	log.WithField("dir", extendedOptions.Dir).Info("Starting mapproxy development server")
	return launcher.Launch(ctx, task)
}
