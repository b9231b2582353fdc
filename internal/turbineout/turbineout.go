// Package turbineout reads the turbineOutput directory convention written by
// actuator-method solvers: one file per output key under numeric time
// directories, with a '#'-prefixed header naming the bookkeeping columns and
// whitespace-separated numeric rows.
package turbineout

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rotorpost/rotorpost/schema"
)

// Header column names with a fixed meaning. Every other header name is the
// quantity itself.
const (
	turbineColumn = "Turbine"
	bladeColumn   = "Blade"
	timeColumn    = "Time(s)"
	dtColumn      = "dt(s)"
)

// headerSeparator is the four-space run between header names.
const headerSeparator = "    "

// columnLayout captures where the bookkeeping columns sit in a parsed header.
type columnLayout struct {
	names      []string // Meta column names in file order
	quantity   string   // Name of the payload quantity (last header entry)
	timeIdx    int      // Index of the time column, always >= 0
	turbineIdx int      // Index of the turbine column, -1 when absent
	bladeIdx   int      // Index of the blade column, -1 when absent
}

// metaCount reports the number of bookkeeping columns per row.
func (l *columnLayout) metaCount() int { return len(l.names) }

// ParseOutput parses one turbine output file for key. Rows belonging to other
// turbines than the given index are dropped. The reader is consumed fully;
// the caller owns closing it.
func ParseOutput(r io.Reader, key string, turbine int) (*schema.RawOutput, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	// 1. Parse the header line
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading output for key %q: %w", key, err)
		}
		return nil, &schema.ShapeError{Key: key, Detail: "file is empty", Expected: 1, Observed: 0}
	}
	layout, err := parseHeader(scanner.Text(), key)
	if err != nil {
		return nil, err
	}

	// 2. Parse the data rows, pinning the payload width to the first row
	raw := &schema.RawOutput{Key: key}
	payloadWidth := -1
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if payloadWidth < 0 {
			payloadWidth = len(fields) - layout.metaCount()
			if payloadWidth < 1 {
				return nil, &schema.ShapeError{
					Key:      key,
					Line:     lineNo,
					Expected: layout.metaCount() + 1,
					Observed: len(fields),
					Detail:   "row has no payload columns after the bookkeeping columns",
				}
			}
		}
		if len(fields) != layout.metaCount()+payloadWidth {
			return nil, &schema.ShapeError{
				Key:      key,
				Line:     lineNo,
				Expected: layout.metaCount() + payloadWidth,
				Observed: len(fields),
				Detail:   "ragged row",
			}
		}

		if err := appendRow(raw, layout, fields, payloadWidth, turbine, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading output for key %q: %w", key, err)
	}

	// 3. Finalize the column list: meta names plus the quantity name per
	// payload column. Files whose rows were all filtered out keep width 1.
	if payloadWidth < 1 {
		payloadWidth = 1
	}
	raw.Columns = append(raw.Columns, layout.names...)
	for range payloadWidth {
		raw.Columns = append(raw.Columns, layout.quantity)
	}
	raw.MetaColumns = layout.metaCount()

	return raw, nil
}

// parseHeader splits the '#'-prefixed header into bookkeeping names and the
// trailing quantity name. Names are separated by a four-space run; the last
// name covers every remaining data column.
func parseHeader(line string, key string) (*columnLayout, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return nil, &schema.ShapeError{Key: key, Line: 1, Expected: 1, Observed: 0,
			Detail: "first line is not a '#' header"}
	}

	var names []string
	for part := range strings.SplitSeq(strings.TrimPrefix(trimmed, "#"), headerSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	if len(names) < 2 {
		return nil, &schema.ShapeError{Key: key, Line: 1, Expected: 2, Observed: len(names),
			Detail: "header needs at least a time column and a quantity"}
	}

	layout := &columnLayout{
		names:      names[:len(names)-1],
		quantity:   names[len(names)-1],
		timeIdx:    -1,
		turbineIdx: -1,
		bladeIdx:   -1,
	}
	for i, name := range layout.names {
		switch name {
		case timeColumn:
			layout.timeIdx = i
		case turbineColumn:
			layout.turbineIdx = i
		case bladeColumn:
			layout.bladeIdx = i
		}
	}
	if layout.timeIdx < 0 {
		return nil, &schema.ShapeError{Key: key, Line: 1, Expected: 1, Observed: 0,
			Detail: "header lacks a Time(s) column"}
	}
	return layout, nil
}

// appendRow parses one data row into the raw output, applying the turbine
// filter.
func appendRow(raw *schema.RawOutput, layout *columnLayout, fields []string, payloadWidth, turbine, lineNo int) error {
	if layout.turbineIdx >= 0 {
		idx, err := parseIndexField(fields[layout.turbineIdx])
		if err != nil {
			return rowValueError(raw.Key, lineNo, fields[layout.turbineIdx])
		}
		if idx != turbine {
			return nil
		}
	}

	t, err := strconv.ParseFloat(fields[layout.timeIdx], 64)
	if err != nil {
		return rowValueError(raw.Key, lineNo, fields[layout.timeIdx])
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: key %q line %d: non-finite timestamp %q",
			schema.ErrMalformedOutput, raw.Key, lineNo, fields[layout.timeIdx])
	}

	values := make([]float64, payloadWidth)
	for i := range payloadWidth {
		v, err := strconv.ParseFloat(fields[layout.metaCount()+i], 64)
		if err != nil {
			return rowValueError(raw.Key, lineNo, fields[layout.metaCount()+i])
		}
		values[i] = v
	}

	raw.Time = append(raw.Time, t)
	raw.Values = append(raw.Values, values)
	if layout.bladeIdx >= 0 {
		blade, err := parseIndexField(fields[layout.bladeIdx])
		if err != nil {
			return rowValueError(raw.Key, lineNo, fields[layout.bladeIdx])
		}
		raw.Blade = append(raw.Blade, blade)
	}
	return nil
}

// parseIndexField reads an integer index that some solvers write as a float
// (e.g. "1.0").
func parseIndexField(s string) (int, error) {
	if idx, err := strconv.Atoi(s); err == nil {
		return idx, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// rowValueError builds the malformed-output error for a non-numeric field.
func rowValueError(key string, lineNo int, field string) error {
	return fmt.Errorf("%w: key %q line %d: non-numeric field %q",
		schema.ErrMalformedOutput, key, lineNo, field)
}
