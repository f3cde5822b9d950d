package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/monoprop/InputParameters"
	"github.com/notargets/monoprop/nozzle"
	"github.com/notargets/monoprop/record"
	"github.com/notargets/monoprop/sizing"
	"github.com/notargets/monoprop/types"
	"github.com/notargets/monoprop/verification"
)

func TestSweepCSV(t *testing.T) {
	d, err := sizing.Run(InputParameters.Default(), nozzle.NewPrimaryModel(), log.NewNopLogger())
	require.NoError(t, err)
	f, err := record.FieldsOf(d)
	require.NoError(t, err)
	vr, err := verification.Run(f, nozzle.NewIndependentModel(), verification.Options{SweepPoints: 7}, log.NewNopLogger())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "VER-001_results.json")
	require.NoError(t, record.Write(path, vr))

	ps, err := readSweep(path)
	require.NoError(t, err)
	assert.Equal(t, vr.PressureSweep, ps)
	{
		var buf bytes.Buffer
		require.NoError(t, writeCSV(&buf, ps))
		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 8)
		assert.Equal(t, header, rows[0])
		assert.Equal(t, "0.15", rows[1][0])
		assert.Equal(t, "0.3", rows[7][0])
		require.Len(t, rows[1], 8)
		assert.Equal(t, "exit_velocity_m_s", rows[0][5])
		assert.Equal(t, "exit_temperature_K", rows[0][7])
		assert.Equal(t, strconv.FormatFloat(ps.ExitVelocityMS[0], 'g', -1, 64), rows[1][5])
		assert.Equal(t, strconv.FormatFloat(ps.ExitTemperatureK[6], 'g', -1, 64), rows[7][7])
	}
	{ // Ragged columns
		ps.ThrustN = ps.ThrustN[:3]
		err := writeCSV(&bytes.Buffer{}, ps)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
}
