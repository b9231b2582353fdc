package schema

// TimeDir is one time directory discovered under a case's turbineOutput
// directory. Name is the literal directory name; Value is its parsed start
// time.
type TimeDir struct {
	Name  string  // Directory name as written by the solver, e.g. "0" or "1200.5"
	Value float64 // Parsed start time in seconds
}

// RawOutput is the parsed content of one turbine output file before it is
// classified into a dataset variant. Columns holds every header name; the
// first MetaColumns of them are bookkeeping (turbine, blade, time, dt) and
// the rest are payload.
type RawOutput struct {
	Key         string      // Output key the file was read from
	Columns     []string    // Header names, meta columns first
	MetaColumns int         // Count of leading meta columns
	Time        []float64   // Timestamp per row
	Blade       []int       // Emitting blade per row; nil when the file has no blade column
	Values      [][]float64 // Payload columns, one row per sample
}

// PayloadWidth reports the number of payload columns per row.
func (r *RawOutput) PayloadWidth() int {
	return len(r.Columns) - r.MetaColumns
}
