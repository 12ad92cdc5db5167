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

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ryanuber/columnize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mapboot/mapboot/image"
)

const (
	imageDirKey             = "dir"
	imageMapproxyVersionKey = "mapproxy_version"
	imageMapproxyVersionEnv = "MAPPROXY_VERSION"
	imageUwsgiVersionKey    = "uwsgi_version"
	imageUwsgiVersionEnv    = "UWSGI_VERSION"
	imagePythonVersionKey   = "python_version"
	imagePythonVersionEnv   = "PYTHON_VERSION"
	imageCheckKey           = "check"
)

var imageViper = viper.New()
var imageRenderViper = viper.New()

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Work with the mapproxy Dockerfile and its build context",
	Args:  cobra.NoArgs,
}

var imageRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the Dockerfile and .dockerignore",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		dir := imageViper.GetString(imageDirKey)
		params := image.Params{
			MapproxyVersion: imageRenderViper.GetString(imageMapproxyVersionKey),
			UwsgiVersion:    imageRenderViper.GetString(imageUwsgiVersionKey),
			PythonVersion:   imageRenderViper.GetString(imagePythonVersionKey),
		}

		if imageRenderViper.GetBool(imageCheckKey) {
			upToDate, err := image.CheckDockerfile(afero.NewOsFs(), dir, params)
			if err != nil {
				return err
			}
			if !upToDate {
				return fmt.Errorf("the Dockerfile in %q differs from the rendered one", dir)
			}
			log.WithField("dir", dir).Info("Dockerfile is up to date")
			return nil
		}

		err = image.WriteDockerfile(afero.NewOsFs(), dir, params)
		if err != nil {
			return err
		}
		log.WithField("dir", dir).Info("Wrote Dockerfile and .dockerignore")
		return nil
	},
}

var imageInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the stages, build parameters and runtime interface of the Dockerfile",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		dir := imageViper.GetString(imageDirKey)
		inspection, err := image.Inspect(afero.NewOsFs(), filepath.Join(dir, "Dockerfile"))
		if err != nil {
			return err
		}

		var output []string
		for _, stage := range inspection.Stages {
			name := stage.Name
			if name == "" {
				name = "-"
			}
			output = append(output, strings.Join([]string{"stage", stage.Image, name}, "|"))
		}
		for _, arg := range inspection.BuildArgs {
			output = append(output, strings.Join([]string{"build arg", arg.Name, arg.Default}, "|"))
		}
		for _, copied := range inspection.Copies {
			source := strings.Join(copied.Sources, " ")
			if copied.From != "" {
				source = copied.From + ":" + source
			}
			output = append(output, strings.Join([]string{"copy", source, copied.Destination}, "|"))
		}
		for _, port := range inspection.Exposed {
			output = append(output, strings.Join([]string{"expose", port, ""}, "|"))
		}
		output = append(output, strings.Join([]string{"entrypoint", strings.Join(inspection.Entrypoint, " "), ""}, "|"))
		output = append(output, strings.Join([]string{"cmd", strings.Join(inspection.Cmd, " "), ""}, "|"))
		fmt.Println(columnize.SimpleFormat(output))
		return nil
	},
}

var imageContextCmd = &cobra.Command{
	Use:   "context",
	Short: "List the files the build context contains once .dockerignore is applied",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(rootViper)
		if err != nil {
			return err
		}

		dir := imageViper.GetString(imageDirKey)
		files, err := image.ListContext(afero.NewOsFs(), dir)
		if err != nil {
			return err
		}
		for _, file := range files {
			fmt.Println(file)
		}
		return nil
	},
}

func init() {
	imageViper.AllowEmptyEnv(true)
	imageRenderViper.AllowEmptyEnv(true)

	imageViper.SetDefault(imageDirKey, ".")
	imageCmd.PersistentFlags().String(
		imageDirKey,
		imageViper.GetString(imageDirKey),
		"Directory of the Dockerfile and its build context",
	)

	// Don't sort alphabetically, keep insertion order
	imageCmd.PersistentFlags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = imageViper.BindPFlags(imageCmd.PersistentFlags())

	// The render parameters answer to the same names as the docker build args
	imageRenderViper.SetDefault(imageMapproxyVersionKey, image.DefaultMapproxyVersion)
	_ = imageRenderViper.BindEnv(imageMapproxyVersionKey, imageMapproxyVersionEnv)
	imageRenderCmd.Flags().String(
		imageMapproxyVersionKey,
		imageRenderViper.GetString(imageMapproxyVersionKey),
		"MapProxy release to install",
	)

	imageRenderViper.SetDefault(imageUwsgiVersionKey, image.DefaultUwsgiVersion)
	_ = imageRenderViper.BindEnv(imageUwsgiVersionKey, imageUwsgiVersionEnv)
	imageRenderCmd.Flags().String(
		imageUwsgiVersionKey,
		imageRenderViper.GetString(imageUwsgiVersionKey),
		"uWSGI release to install",
	)

	imageRenderViper.SetDefault(imagePythonVersionKey, image.DefaultPythonVersion)
	_ = imageRenderViper.BindEnv(imagePythonVersionKey, imagePythonVersionEnv)
	imageRenderCmd.Flags().String(
		imagePythonVersionKey,
		imageRenderViper.GetString(imagePythonVersionKey),
		"Python base image version",
	)

	imageRenderCmd.Flags().Bool(
		imageCheckKey,
		imageRenderViper.GetBool(imageCheckKey),
		"Verify the Dockerfile on disk instead of writing it",
	)

	// Don't sort alphabetically, keep insertion order
	imageRenderCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = imageRenderViper.BindPFlags(imageRenderCmd.Flags())

	imageCmd.AddCommand(imageRenderCmd)
	imageCmd.AddCommand(imageInspectCmd)
	imageCmd.AddCommand(imageContextCmd)
}
