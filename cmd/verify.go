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

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/verification"
)

const DefaultVerificationRecord = "verification/data/VER-001_results.json"

type VerifyOptions struct {
	ID               string
	SweepPoints      int
	GammaCorrelation bool
	Strict           bool
}

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-verify a design record with the independent model",
	Long: `
Re-derives the design in a baseline record with independently sourced constants and root finder,
compares the results field by field against a 5 % tolerance, re-checks the requirements and sweeps
the feed pressure range at fixed geometry.

monoprop verify -b design/data/thruster_performance_sizing.json --strict`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		opts := VerifyOptions{}
		opts.ID, _ = cmd.Flags().GetString("id")
		opts.SweepPoints, _ = cmd.Flags().GetInt("sweep-points")
		opts.GammaCorrelation, _ = cmd.Flags().GetBool("gamma-correlation")
		opts.Strict, _ = cmd.Flags().GetBool("strict")
		_, err = RunVerify(viper.GetString("verify.baseline"), viper.GetString("verify.output"), opts, logger)
		return
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	VerifyCmd.Flags().StringP("baseline", "b", DefaultDesignRecord, "design record to verify, .json or .yaml")
	VerifyCmd.Flags().StringP("output", "o", DefaultVerificationRecord, "verification record to write, .json or .yaml")
	VerifyCmd.Flags().String("id", verification.DefaultID, "verification id")
	VerifyCmd.Flags().IntP("sweep-points", "n", verification.DefaultSweepPoints, "number of feed pressures in the sweep")
	VerifyCmd.Flags().Bool("gamma-correlation", false, "take gamma from the dissociation correlation instead of the design input")
	VerifyCmd.Flags().Bool("strict", false, "exit non-zero when any compared field exceeds tolerance")
	_ = viper.BindPFlag("verify.baseline", VerifyCmd.Flags().Lookup("baseline"))
	_ = viper.BindPFlag("verify.output", VerifyCmd.Flags().Lookup("output"))
}

// RunVerify cross-verifies the record at baselineFile and writes the result to outFile.
func RunVerify(baselineFile, outFile string, opts VerifyOptions, logger log.Logger) (vr *verification.Record, err error) {
	var f record.Fields
	if f, err = record.Load(baselineFile); err != nil {
		return
	}
	m := nozzle.NewIndependentModel()
	m.GammaFromGas = opts.GammaCorrelation
	if vr, err = verification.Run(f, m, verification.Options{
		ID:          opts.ID,
		Baseline:    baselineFile,
		SweepPoints: opts.SweepPoints,
	}, logger); err != nil {
		return nil, err
	}
	if err = record.Write(outFile, vr); err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "wrote verification record", "file", outFile)
	switch {
	case !vr.RequirementsVerification.AllPass():
		err = fmt.Errorf("%s: %w", vr.VerificationID, ErrRequirementsNotMet)
	case opts.Strict && vr.OverallAgreement != types.VerdictPass:
		err = fmt.Errorf("%s: %s: %w", vr.VerificationID, strings.Join(vr.Exceeding(), ", "), ErrToleranceExceeded)
	}
	return
}
