package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/verification"
)

var (
	recordFile string
	csvFile    string
)

func main() {
	recordFilePtr := flag.String("record", recordFile, "verification record containing a pressure sweep")
	csvFilePtr := flag.String("csvFile", csvFile, "CSV file to write, stdout when empty")
	flag.Parse()
	recordFile, csvFile = *recordFilePtr, *csvFilePtr
	if len(recordFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	ps, err := readSweep(recordFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	var w io.Writer = os.Stdout
	if len(csvFile) != 0 {
		var f *os.File
		if f, err = os.Create(csvFile); err != nil {
			panic(err)
		}
		defer f.Close()
		bw := bufio.NewWriter(f)
		defer bw.Flush()
		w = bw
	}
	if err = writeCSV(w, ps); err != nil {
		panic(err)
	}
	fmt.Fprintf(os.Stderr, "Sweep: %d points, thrust %.4f - %.4f N, Isp %.2f s\n",
		len(ps.FeedPressureMPa), ps.ThrustMinN, ps.ThrustMaxN, ps.SpecificImpulseMeanS)
}

func readSweep(recordFile string) (ps verification.PressureSweep, err error) {
	var f record.Fields
	if f, err = record.Load(recordFile); err != nil {
		return
	}
	err = f.Decode("pressure_sweep", &ps)
	return
}

var header = []string{
	"feed_pressure_MPa", "chamber_pressure_MPa", "thrust_N",
	"specific_impulse_s", "mass_flow_rate_kg_s", "exit_velocity_m_s",
	"exit_pressure_Pa", "exit_temperature_K",
}

func writeCSV(w io.Writer, ps verification.PressureSweep) (err error) {
	columns := [][]float64{
		ps.FeedPressureMPa, ps.ChamberPressureMPa, ps.ThrustN,
		ps.SpecificImpulseS, ps.MassFlowRateKgS, ps.ExitVelocityMS,
		ps.ExitPressurePa, ps.ExitTemperatureK,
	}
	N := len(ps.FeedPressureMPa)
	for i, col := range columns {
		if len(col) != N {
			return fmt.Errorf("column %s has %d entries, want %d: %w", header[i], len(col), N, types.ErrConfiguration)
		}
	}
	cw := csv.NewWriter(w)
	if err = cw.Write(header); err != nil {
		return
	}
	row := make([]string, len(columns))
	for i := 0; i < N; i++ {
		for j, col := range columns {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
