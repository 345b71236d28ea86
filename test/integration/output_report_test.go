package integration

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthtrail/household-projector/internal/calculation"
	"github.com/wealthtrail/household-projector/internal/output"
)

func TestReportGeneration(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)

	for _, name := range []string{"console", "csv", "json"} {
		t.Run(name, func(t *testing.T) {
			f, err := output.GetFormatterByName(name)
			require.NoError(t, err)
			data, err := f.Format(result)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	_, err = output.GetFormatterByName("html")
	assert.Error(t, err, "unsupported formats must be rejected, not silently ignored")
}

func TestCSVReportCoversEveryYear(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)

	f, err := output.GetFormatterByName("csv")
	require.NoError(t, err)
	data, err := f.Format(result)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(result.Years)+1)

	for i, y := range result.Years {
		row := records[i+1]
		assert.Equal(t, strconv.Itoa(y.Year), row[0])
	}
}

func TestAmortizationReport(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	schedule := engine.GenerateAmortizationSchedule(hh)
	require.NotEmpty(t, schedule)

	table := output.AmortizationTable(schedule)
	assert.Contains(t, string(table), "MORTGAGE AMORTIZATION SCHEDULE")

	data, err := output.AmortizationCSV(schedule)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, len(schedule)+1)
}
