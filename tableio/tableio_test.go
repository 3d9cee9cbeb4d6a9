package tableio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
	"github.com/meenmo/lifelib/tableio"
)

const scenarioYAML = `
name: scenario
basis: qx
rows:
  - {age: 60, value: 0.01}
  - {age: 61, value: 0.02}
  - {age: 62, value: 1.0}
`

const scenarioTOML = `
name = "scenario"
basis = "qx"

[[rows]]
age = 60
value = 0.01

[[rows]]
age = 61
value = 0.02

[[rows]]
age = 62
value = 1.0
`

const scenarioJSON = `{
  "name": "scenario",
  "basis": "qx",
  "rows": [
    {"age": 60, "value": 0.01},
    {"age": 61, "value": 0.02},
    {"age": 62, "value": 1.0}
  ]
}`

func TestDecode_ScenarioA(t *testing.T) {
	t.Parallel()

	docs := map[tableio.Format]string{
		tableio.FormatYAML: scenarioYAML,
		tableio.FormatTOML: scenarioTOML,
		tableio.FormatJSON: scenarioJSON,
	}
	for f, doc := range docs {
		raw, err := tableio.Decode(strings.NewReader(doc), f)
		require.NoError(t, err, f.String())
		assert.Equal(t, "scenario", raw.Name)
		assert.Equal(t, mortality.BasisQx, raw.Basis)
		assert.False(t, raw.Select)
		require.Len(t, raw.Rows, 3)

		table, err := mortality.FromRaw(raw)
		require.NoError(t, err, f.String())
		cfg, err := mortality.NewConfig(table, mortality.Options{Radix: 1000})
		require.NoError(t, err)

		l62, err := cfg.Lx(62, nil)
		require.NoError(t, err)
		assert.InDelta(t, 970.2, l62, 1e-9, f.String())
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing basis": "rows:\n  - {age: 60, value: 1}\n",
		"bad basis":     "basis: mx\nrows:\n  - {age: 60, value: 1}\n",
		"missing value": "basis: qx\nrows:\n  - {age: 60}\n",
		"not yaml":      "basis: [qx\n",
	}
	for name, doc := range cases {
		_, err := tableio.Decode(strings.NewReader(doc), tableio.FormatYAML)
		assert.ErrorIs(t, err, errs.ErrDataIntegrity, name)
	}

	_, err := tableio.Decode(strings.NewReader(`{"basis": "qx", "extra": 1}`), tableio.FormatJSON)
	assert.ErrorIs(t, err, errs.ErrDataIntegrity)

	_, err = tableio.Decode(strings.NewReader("age,value\n"), tableio.FormatCSV)
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestDecodeCSV_Select(t *testing.T) {
	t.Parallel()

	in := `age, value, duration
60, 0.005, 0
61, 0.012, 1
60, 0.01, 2
61, 0.02, 2
62, 1.0, 2
`
	raw, err := tableio.DecodeCSV(strings.NewReader(in), tableio.Tag{Name: "sel", Basis: mortality.BasisQx, Select: true})
	require.NoError(t, err)
	require.Len(t, raw.Rows, 5)
	require.NotNil(t, raw.Rows[1].Duration)
	assert.Equal(t, 1, *raw.Rows[1].Duration)

	table, err := mortality.FromRaw(raw)
	require.NoError(t, err)
	assert.True(t, table.IsSelect())
	q, err := table.SelectQxAt(60, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.012, q)
}

func TestDecodeCSV_BasisColumnAndErrors(t *testing.T) {
	t.Parallel()

	raw, err := tableio.DecodeCSV(strings.NewReader("age,lx\n60,1000\n61,0\n"), tableio.Tag{Basis: mortality.BasisLx})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, raw.Rows[0].Value)

	_, err = tableio.DecodeCSV(strings.NewReader("age,qx\n60,x\n"), tableio.Tag{Basis: mortality.BasisQx})
	assert.ErrorIs(t, err, errs.ErrDataIntegrity)
	_, err = tableio.DecodeCSV(strings.NewReader("years,qx\n60,1\n"), tableio.Tag{Basis: mortality.BasisQx})
	assert.ErrorIs(t, err, errs.ErrDataIntegrity)
	_, err = tableio.DecodeCSV(strings.NewReader("age,qx\n60,1\n"), tableio.Tag{})
	assert.ErrorIs(t, err, errs.ErrConfig)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	src := mortality.RawTable{
		Name:   "sel",
		Basis:  mortality.BasisQx,
		Select: true,
		Rows: []mortality.RawRow{
			{Age: 60, Value: 0.005, Duration: mortality.Ptr(0)},
			{Age: 60, Value: 0.01, Duration: mortality.Ptr(1)},
			{Age: 61, Value: 1, Duration: mortality.Ptr(1)},
		},
	}

	for _, f := range []tableio.Format{tableio.FormatYAML, tableio.FormatTOML, tableio.FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, tableio.Encode(&buf, f, src), f.String())

		got, err := tableio.Decode(&buf, f)
		require.NoError(t, err, f.String())
		assert.Equal(t, src, got, f.String())
	}

	assert.ErrorIs(t, tableio.Encode(&bytes.Buffer{}, tableio.FormatCSV, src), errs.ErrConfig)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "scenario.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(scenarioYAML), 0o600))
	csvPath := filepath.Join(dir, "scenario.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("age,qx\n60,0.01\n61,0.02\n62,1\n"), 0o600))

	raw, err := tableio.Load(yamlPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "scenario", raw.Name)

	_, err = tableio.Load(csvPath, nil)
	assert.ErrorIs(t, err, errs.ErrConfig)

	raw, err = tableio.Load(csvPath, &tableio.Tag{Basis: mortality.BasisQx})
	require.NoError(t, err)
	assert.Len(t, raw.Rows, 3)

	_, err = tableio.Load(filepath.Join(dir, "table.xls"), nil)
	assert.ErrorIs(t, err, errs.ErrConfig)

	_, err = tableio.Load(filepath.Join(dir, "missing.toml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]tableio.Format{
		"yaml": tableio.FormatYAML, ".yml": tableio.FormatYAML, "TOML": tableio.FormatTOML,
		".json": tableio.FormatJSON, "csv": tableio.FormatCSV,
	} {
		got, err := tableio.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := tableio.ParseFormat("xlsx")
	assert.Error(t, err)
}
