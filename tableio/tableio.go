// Package tableio decodes mortality table documents into the tagged
// mortality.RawTable contract.
//
// YAML, TOML and JSON documents share one shape:
//
//	name: AM92
//	basis: qx          # qx or lx
//	select: true
//	rows:
//	  - {age: 17, value: 0.000447, duration: 0}
//
// CSV files carry only the rows, with header age,value[,duration]; their
// tag comes from the caller. The basis is never inferred from the numbers.
package tableio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/lifelib/errs"
	"github.com/meenmo/lifelib/mortality"
)

// Format is a document encoding.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatTOML
	FormatJSON
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return 0, fmt.Errorf("unsupported table format %q", s)
}

// Tag is the caller-supplied header of a CSV table.
type Tag struct {
	Name   string
	Basis  mortality.Basis
	Select bool
}

type document struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Basis  string `yaml:"basis" toml:"basis" json:"basis"`
	Select bool   `yaml:"select" toml:"select" json:"select"`
	Rows   []row  `yaml:"rows" toml:"rows" json:"rows"`
}

type row struct {
	Age      *int     `yaml:"age" toml:"age" json:"age"`
	Value    *float64 `yaml:"value" toml:"value" json:"value"`
	Duration *int     `yaml:"duration,omitempty" toml:"duration,omitempty" json:"duration,omitempty"`
}

// Decode reads a YAML, TOML or JSON table document from r. Use DecodeCSV
// for CSV.
func Decode(r io.Reader, f Format) (mortality.RawTable, error) {
	const op = "tableio.Decode"

	content, err := io.ReadAll(r)
	if err != nil {
		return mortality.RawTable{}, fmt.Errorf("read table: %w", err)
	}

	var doc document
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(content, &doc)
	case FormatTOML:
		err = toml.Unmarshal(content, &doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatCSV:
		return mortality.RawTable{}, errs.Config(op, "format", "csv tables need a tag; use DecodeCSV")
	default:
		return mortality.RawTable{}, errs.Config(op, "format", "unsupported format %d", int(f))
	}
	if err != nil {
		return mortality.RawTable{}, errs.DataIntegrity(op, "parse %s: %v", f, err)
	}

	return doc.raw(op)
}

func (d document) raw(op string) (mortality.RawTable, error) {
	if strings.TrimSpace(d.Basis) == "" {
		return mortality.RawTable{}, errs.DataIntegrity(op, "table basis is required (qx or lx)")
	}
	basis, err := mortality.ParseBasis(d.Basis)
	if err != nil {
		return mortality.RawTable{}, errs.DataIntegrity(op, "%v", err)
	}

	out := mortality.RawTable{Name: d.Name, Basis: basis, Select: d.Select, Rows: make([]mortality.RawRow, 0, len(d.Rows))}
	for k, r := range d.Rows {
		if r.Age == nil || r.Value == nil {
			return mortality.RawTable{}, errs.DataIntegrity(op, "row %d needs both age and value", k+1)
		}
		out.Rows = append(out.Rows, mortality.RawRow{Age: *r.Age, Value: *r.Value, Duration: r.Duration})
	}
	return out, nil
}

// DecodeCSV reads rows with header age,value[,duration] and applies tag.
func DecodeCSV(r io.Reader, tag Tag) (mortality.RawTable, error) {
	const op = "tableio.DecodeCSV"

	if tag.Basis != mortality.BasisQx && tag.Basis != mortality.BasisLx {
		return mortality.RawTable{}, errs.Config(op, "basis", "csv tag needs a basis (qx or lx)")
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return mortality.RawTable{}, errs.DataIntegrity(op, "read header: %v", err)
	}
	cols := map[string]int{}
	for k, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = k
	}
	ageCol, okAge := cols["age"]
	valCol, okVal := cols["value"]
	if !okVal {
		valCol, okVal = cols[tag.Basis.String()]
	}
	durCol, hasDur := cols["duration"]
	if !okAge || !okVal {
		return mortality.RawTable{}, errs.DataIntegrity(op, "header %v needs age and value columns", header)
	}

	out := mortality.RawTable{Name: tag.Name, Basis: tag.Basis, Select: tag.Select}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return mortality.RawTable{}, errs.DataIntegrity(op, "line %d: %v", line, err)
		}

		field := func(k int) string {
			if k < len(rec) {
				return strings.TrimSpace(rec[k])
			}
			return ""
		}

		age, err := strconv.Atoi(field(ageCol))
		if err != nil {
			return mortality.RawTable{}, errs.DataIntegrity(op, "line %d: bad age %q", line, field(ageCol))
		}
		value, err := strconv.ParseFloat(field(valCol), 64)
		if err != nil {
			return mortality.RawTable{}, errs.DataIntegrity(op, "line %d: bad value %q", line, field(valCol))
		}
		rr := mortality.RawRow{Age: age, Value: value}
		if hasDur && field(durCol) != "" {
			d, err := strconv.Atoi(field(durCol))
			if err != nil {
				return mortality.RawTable{}, errs.DataIntegrity(op, "line %d: bad duration %q", line, field(durCol))
			}
			rr.Duration = &d
		}
		out.Rows = append(out.Rows, rr)
	}

	return out, nil
}

// Load reads the table at path, choosing the decoder from the file
// extension. CSV files need tag; other formats ignore it.
func Load(path string, tag *Tag) (mortality.RawTable, error) {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return mortality.RawTable{}, errs.Config("tableio.Load", "path", "%v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return mortality.RawTable{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	if f == FormatCSV {
		if tag == nil {
			return mortality.RawTable{}, errs.Config("tableio.Load", "basis", "csv table %s needs a basis", path)
		}
		return DecodeCSV(file, *tag)
	}
	return Decode(file, f)
}

// Encode writes raw as a YAML, TOML or JSON document.
func Encode(w io.Writer, f Format, raw mortality.RawTable) error {
	doc := document{Name: raw.Name, Basis: raw.Basis.String(), Select: raw.Select, Rows: make([]row, len(raw.Rows))}
	for k, r := range raw.Rows {
		doc.Rows[k] = row{Age: mortality.Ptr(r.Age), Value: mortality.Ptr(r.Value), Duration: r.Duration}
	}

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return errs.Config("tableio.Encode", "format", "cannot encode %s", f)
	}
}
