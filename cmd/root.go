/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/monoprop/types"
)

var (
	cfgFile  string
	logger   = log.NewNopLogger()
	profiler interface{ Stop() }
)

// ErrRequirementsNotMet makes the command exit non-zero after its record has been written.
var ErrRequirementsNotMet = errors.New("one or more requirements not met")

// ErrToleranceExceeded is returned by verify --strict when a compared field is out of tolerance.
var ErrToleranceExceeded = errors.New("cross-verification tolerance exceeded")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monoprop",
	Short: "Monopropellant thruster sizing and cross-verification",
	Long: `
Sizes a small hydrazine monopropellant thruster from lumped isentropic nozzle theory, checks the
design against its requirements and cross-verifies it with an independently parameterized model.

monoprop size -I design.yaml
monoprop verify -b design/data/thruster_performance_sizing.json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if logger, err = NewLogger(os.Stderr, viper.GetString("log-level")); err != nil {
			return
		}
		return startProfile(viper.GetString("profile"), viper.GetString("profile-dir"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if profiler != nil {
		profiler.Stop()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.monoprop.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("profile", "", "write a profile: cpu or mem")
	rootCmd.PersistentFlags().String("profile-dir", ".", "directory for profile output")
	for _, name := range []string{"log-level", "profile", "profile-dir"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".monoprop")
	}
	viper.SetEnvPrefix("MONOPROP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// NewLogger returns a logfmt logger filtered at the named level.
func NewLogger(w io.Writer, levelName string) (l log.Logger, err error) {
	var opt level.Option
	switch strings.ToLower(levelName) {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "warn", "warning":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q: %w", levelName, types.ErrConfiguration)
	}
	l = log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	l = level.NewFilter(l, opt)
	return
}

func startProfile(kind, dir string) error {
	var mode func(*profile.Profile)
	switch strings.ToLower(kind) {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return fmt.Errorf("unknown profile %q: %w", kind, types.ErrConfiguration)
	}
	profiler = profile.Start(mode, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	return nil
}
