package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TimeDirMode represents how a time directory is selected within a case.
	TimeDirMode string

	// ArchiveBackend represents the database backend for run tracking.
	ArchiveBackend string

	// FigureFormat represents the image format for generated figures.
	FigureFormat string

	// KeyKind classifies what a turbine output key measures.
	KeyKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All time directory modes supported.
const (
	LatestDir   TimeDirMode = "latest" // default
	FirstDir    TimeDirMode = "first"
	ExactDir    TimeDirMode = "exact"
	ClosestDir  TimeDirMode = "closest"
	CombineDirs TimeDirMode = "combine"
)

// All archive backends supported.
const (
	SQLiteBackend     ArchiveBackend = "sqlite" // default
	MySQLBackend      ArchiveBackend = "mysql"
	PostgreSQLBackend ArchiveBackend = "postgresql"
	NoneBackend       ArchiveBackend = "none"
)

// All figure formats supported.
const (
	PNGFigure FigureFormat = "png" // default
	SVGFigure FigureFormat = "svg"
)

// All key kinds supported.
const (
	KindLoad     KeyKind = "load"     // integrated rotor loads
	KindMotion   KeyKind = "motion"   // platform attitude and translation
	KindGeometry KeyKind = "geometry" // per-station blade geometry, constant in time
	KindSpanwise KeyKind = "spanwise" // per-station flow and force distributions
	KindPosition KeyKind = "position" // vector positions of turbine landmarks
	KindOther    KeyKind = "other"    // present on disk but not in the catalog
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidTimeDirModes lists all valid time directory modes.
var ValidTimeDirModes = map[TimeDirMode]struct{}{
	LatestDir:   {},
	FirstDir:    {},
	ExactDir:    {},
	ClosestDir:  {},
	CombineDirs: {},
}

// ValidArchiveBackends lists all valid archive backends.
var ValidArchiveBackends = map[ArchiveBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidFigureFormats lists all valid figure formats.
var ValidFigureFormats = map[FigureFormat]struct{}{
	PNGFigure: {},
	SVGFigure: {},
}

// TimeDirModesNeedingValue lists the modes that require a time target value.
var TimeDirModesNeedingValue = map[TimeDirMode]struct{}{
	ExactDir:   {},
	ClosestDir: {},
}
