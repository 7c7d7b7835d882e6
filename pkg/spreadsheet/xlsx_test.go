package spreadsheet

import (
	"bytes"
	"testing"

	"org_diagnostics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteAndRead(t *testing.T) {
	datasets := []model.Dataset{
		{
			Name:    "Detail",
			Columns: []string{"Name", "Wert"},
			Rows:    [][]interface{}{{"a", 1}, {"b", -2}},
		},
		{
			Name:    "Overview",
			Columns: []string{"Summe"},
			Rows:    [][]interface{}{{-1}},
		},
	}

	data, err := Write(datasets)
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Detail", got[0].Name)
	assert.Equal(t, []string{"Name", "Wert"}, got[0].Columns)
	assert.Equal(t, [][]interface{}{{"a", "1"}, {"b", "-2"}}, got[0].Rows)
	assert.Equal(t, "Overview", got[1].Name)
	assert.Equal(t, [][]interface{}{{"-1"}}, got[1].Rows)
}

func TestWriteNumbersAndHeaderStyle(t *testing.T) {
	data, err := Write([]model.Dataset{{Name: "S", Columns: []string{"n"}, Rows: [][]interface{}{{7}}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("S", "A2")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	bold, err := f.GetCellStyle("S", "A1")
	require.NoError(t, err)
	assert.NotZero(t, bold)
}

func TestWriteEmpty(t *testing.T) {
	_, err := Write(nil)
	assert.ErrorIs(t, err, ErrNoDatasets)
}

func TestWriteHeaderOnly(t *testing.T) {
	data, err := Write([]model.Dataset{{Name: "Leer", Columns: []string{"a", "b"}}})
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b"}, got[0].Columns)
	assert.Empty(t, got[0].Rows)
}
