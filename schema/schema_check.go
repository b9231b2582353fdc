package schema

// CheckResult holds the results of a case validation.
type CheckResult struct {
	Passed      bool
	Root        string        // Case root that was checked
	TimeDirs    []TimeDir     // Time directories discovered
	CheckedKeys []string      // Keys that were loaded and validated
	Failures    []CheckFailure
}

// CheckFailure represents one key or structural rule that failed validation.
type CheckFailure struct {
	Key    string // Offending key, empty for structural failures
	Reason string
}
