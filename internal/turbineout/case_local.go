package turbineout

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// OutputDirName is the directory the solver writes output files into,
// directly under the case root.
const OutputDirName = "turbineOutput"

// LocalCaseStore implements the CaseStore interface by scanning case
// directories on the local filesystem.
type LocalCaseStore struct {
	Mode    schema.TimeDirMode // Time directory selection policy
	Value   float64            // Target start time for exact/closest
	Turbine int                // Turbine index to keep
}

var _ contract.CaseStore = &LocalCaseStore{} // Compile-time check

// NewLocalCaseStore creates a new instance of the local case store.
func NewLocalCaseStore(mode schema.TimeDirMode, value float64, turbine int) *LocalCaseStore {
	return &LocalCaseStore{Mode: mode, Value: value, Turbine: turbine}
}

// Resolve implements the CaseStore interface.
func (s *LocalCaseStore) Resolve(ctx context.Context, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving case root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory. Verify the path points at a case root", schema.ErrCaseNotFound, abs)
	}
	outInfo, err := os.Stat(filepath.Join(abs, OutputDirName))
	if err != nil || !outInfo.IsDir() {
		return "", fmt.Errorf("%w: %q has no %s directory. Run the solver first or check the path", schema.ErrCaseNotFound, abs, OutputDirName)
	}

	// A case is only usable with at least one parseable time directory
	if _, err := s.ListTimeDirs(ctx, abs); err != nil {
		return "", err
	}
	return abs, nil
}

// ListTimeDirs implements the CaseStore interface.
func (s *LocalCaseStore) ListTimeDirs(_ context.Context, root string) ([]schema.TimeDir, error) {
	entries, err := os.ReadDir(filepath.Join(root, OutputDirName))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s under %q: %v", schema.ErrCaseNotFound, OutputDirName, root, err)
	}

	var dirs []schema.TimeDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		value, err := strconv.ParseFloat(entry.Name(), 64)
		if err != nil {
			// Non-numeric directories are not time directories
			continue
		}
		dirs = append(dirs, schema.TimeDir{Name: entry.Name(), Value: value})
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: no time directories under %q", schema.ErrCaseNotFound, filepath.Join(root, OutputDirName))
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Value < dirs[j].Value })
	return dirs, nil
}

// ListKeys implements the CaseStore interface.
func (s *LocalCaseStore) ListKeys(ctx context.Context, root string) ([]string, error) {
	dirs, err := s.ListTimeDirs(ctx, root)
	if err != nil {
		return nil, err
	}
	selected, err := s.selectTimeDirs(dirs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, dir := range selected {
		entries, err := os.ReadDir(filepath.Join(root, OutputDirName, dir.Name))
		if err != nil {
			return nil, fmt.Errorf("listing keys in time directory %q: %w", dir.Name, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			seen[entry.Name()] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ReadOutput implements the CaseStore interface.
func (s *LocalCaseStore) ReadOutput(ctx context.Context, root string, key string) (*schema.RawOutput, error) {
	dirs, err := s.ListTimeDirs(ctx, root)
	if err != nil {
		return nil, err
	}
	selected, err := s.selectTimeDirs(dirs)
	if err != nil {
		return nil, err
	}

	// 1. Parse the key's file from each selected time directory in ascending
	// start-time order. A restart does not rewrite keys it no longer emits,
	// so under combine a key may be missing from some directories.
	var parts []*schema.RawOutput
	for _, dir := range selected {
		raw, err := s.readOne(root, dir, key)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, raw)
	}
	if len(parts) == 0 {
		return nil, schema.NewKeyError(key, schema.ErrUnknownKey)
	}

	// 2. Stitch restarts together, keeping rows strictly after the newest
	// timestamp already accepted. Overlapping rows rewritten by a restart
	// lose to the data that was there first. Parts with no surviving rows
	// carry no layout information and are skipped.
	var rest []*schema.RawOutput
	merged := parts[0]
	for i, part := range parts {
		if len(part.Time) > 0 {
			merged = part
			rest = parts[i+1:]
			break
		}
	}
	maxSoFar := maxTime(merged.Time)
	for _, part := range rest {
		if len(part.Time) == 0 {
			continue
		}
		if err := checkSameLayout(merged, part); err != nil {
			return nil, err
		}
		cutoff := maxSoFar
		for i, t := range part.Time {
			if t <= cutoff {
				continue
			}
			merged.Time = append(merged.Time, t)
			merged.Values = append(merged.Values, part.Values[i])
			if part.Blade != nil {
				merged.Blade = append(merged.Blade, part.Blade[i])
			}
			maxSoFar = max(maxSoFar, t)
		}
	}
	return merged, nil
}

// readOne opens and parses the key's file in a single time directory. The
// returned error satisfies os.IsNotExist when the file is absent.
func (s *LocalCaseStore) readOne(root string, dir schema.TimeDir, key string) (*schema.RawOutput, error) {
	path := filepath.Join(root, OutputDirName, dir.Name, key)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseOutput(f, key, s.Turbine)
}

// selectTimeDirs applies the store's selection policy to the ascending
// directory list.
func (s *LocalCaseStore) selectTimeDirs(dirs []schema.TimeDir) ([]schema.TimeDir, error) {
	switch s.Mode {
	case schema.LatestDir, "":
		return dirs[len(dirs)-1:], nil
	case schema.FirstDir:
		return dirs[:1], nil
	case schema.ExactDir:
		for _, dir := range dirs {
			if dir.Value == s.Value {
				return []schema.TimeDir{dir}, nil
			}
		}
		return nil, fmt.Errorf("%w: no time directory starting exactly at %g", schema.ErrCaseNotFound, s.Value)
	case schema.ClosestDir:
		best := 0
		for i, dir := range dirs {
			if math.Abs(dir.Value-s.Value) < math.Abs(dirs[best].Value-s.Value) {
				best = i
			}
		}
		return dirs[best : best+1], nil
	case schema.CombineDirs:
		return dirs, nil
	default:
		return nil, fmt.Errorf("unsupported time directory mode: %q", s.Mode)
	}
}

// checkSameLayout verifies that a restart kept the column layout of the
// earlier file.
func checkSameLayout(base, next *schema.RawOutput) error {
	if base.MetaColumns != next.MetaColumns || base.PayloadWidth() != next.PayloadWidth() {
		return &schema.ShapeError{
			Key:      base.Key,
			Expected: base.PayloadWidth(),
			Observed: next.PayloadWidth(),
			Detail:   "restart changed the column layout",
		}
	}
	if (base.Blade == nil) != (next.Blade == nil) {
		return &schema.ShapeError{
			Key:      base.Key,
			Expected: base.MetaColumns,
			Observed: next.MetaColumns,
			Detail:   "restart changed the blade column",
		}
	}
	return nil
}

// maxTime returns the newest timestamp in a row set, or -Inf when empty.
func maxTime(time []float64) float64 {
	newest := math.Inf(-1)
	for _, t := range time {
		newest = max(newest, t)
	}
	return newest
}
