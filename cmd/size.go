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
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/monoprop/InputParameters"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/sizing"
)

const DefaultDesignRecord = "design/data/thruster_performance_sizing.json"

// SizeCmd represents the size command
var SizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size the thruster nozzle and write the design record",
	Long: `
Solves throat and exit geometry for the target thrust, predicts performance and evaluates the
requirements. Without an input file the built-in 1 N design point is used. Exits non-zero if any
requirement fails; the record is still written.

monoprop size -I design.yaml -o design/data/thruster_performance_sizing.json`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if example, _ := cmd.Flags().GetBool("example"); example {
			var data []byte
			if data, err = yaml.Marshal(InputParameters.Default()); err != nil {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s", data)
			return
		}
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		_, err = RunSize(inputFile, viper.GetString("size.output"), logger)
		return
	},
}

func init() {
	rootCmd.AddCommand(SizeCmd)
	SizeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for design inputs like:\n\t- Gamma, Dissociation\n\t- FeedPressure [MPa], AreaRatio\n\t- Requirements")
	SizeCmd.Flags().StringP("output", "o", DefaultDesignRecord, "design record to write, .json or .yaml")
	SizeCmd.Flags().Bool("example", false, "print the built-in design as an example input file and exit")
	_ = viper.BindPFlag("size.output", SizeCmd.Flags().Lookup("output"))
}

func processInput(inputFile string, logger log.Logger) (ip *InputParameters.InputParameters, err error) {
	ip = InputParameters.Default()
	if len(inputFile) == 0 {
		level.Info(logger).Log("msg", "no input file, using built-in design", "design", ip.DesignID)
		return
	}
	if err = ip.ReadFile(inputFile); err != nil {
		return nil, err
	}
	var buf strings.Builder
	ip.Fprint(&buf)
	level.Debug(logger).Log("msg", "input parameters", "file", inputFile, "values", buf.String())
	return
}

// RunSize sizes the design from inputFile and writes its record to outFile.
func RunSize(inputFile, outFile string, logger log.Logger) (d *record.Design, err error) {
	var ip *InputParameters.InputParameters
	if ip, err = processInput(inputFile, logger); err != nil {
		return
	}
	if d, err = sizing.Run(ip, nozzle.NewPrimaryModel(), logger); err != nil {
		return nil, err
	}
	if err = record.Write(outFile, d); err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "wrote design record", "file", outFile)
	if !d.RequirementsCompliance.AllPass() {
		err = fmt.Errorf("%s: %w", d.DesignID, ErrRequirementsNotMet)
	}
	return
}
