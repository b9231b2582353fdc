package schema

import "sort"

// RadiusKey holds the radial station positions. Spanwise profiles pair
// against it when the case provides one.
const RadiusKey = "radiusC"

// KeyInfo describes a turbine output key from the built-in catalog.
type KeyInfo struct {
	Kind  KeyKind // What the quantity measures
	Unit  string  // Display unit, empty for dimensionless
	Label string  // Human-readable description
}

// KnownKeys maps the turbine output keys rotorpost understands to their
// catalog entries. Keys found on disk but missing here are still readable;
// they classify as KindOther with no unit hint.
var KnownKeys = map[string]KeyInfo{
	// Integrated rotor loads.
	"thrust":      {KindLoad, "N", "Rotor thrust"},
	"torqueRotor": {KindLoad, "N-m", "Rotor torque"},
	"powerRotor":  {KindLoad, "W", "Rotor power"},

	// Platform attitude and translation.
	"roll":  {KindMotion, "deg", "Platform roll"},
	"pitch": {KindMotion, "deg", "Platform pitch"},
	"yaw":   {KindMotion, "deg", "Platform yaw"},
	"surge": {KindMotion, "m", "Platform surge"},
	"sway":  {KindMotion, "m", "Platform sway"},
	"heave": {KindMotion, "m", "Platform heave"},

	// Blade geometry, identical across blades and constant in time.
	"radiusC": {KindGeometry, "m", "Station radius"},
	"chordC":  {KindGeometry, "m", "Station chord"},

	// Spanwise flow and force distributions.
	"alpha":           {KindSpanwise, "deg", "Angle of attack"},
	"Vmag":            {KindSpanwise, "m/s", "Relative velocity magnitude"},
	"Cl":              {KindSpanwise, "", "Sectional lift coefficient"},
	"Cd":              {KindSpanwise, "", "Sectional drag coefficient"},
	"axialForce":      {KindSpanwise, "N/m", "Sectional axial force"},
	"tangentialForce": {KindSpanwise, "N/m", "Sectional tangential force"},

	// Turbine landmark positions (x y z per sample).
	"bladeTipPosition":            {KindPosition, "m", "Blade tip position"},
	"bladeRootPosition":           {KindPosition, "m", "Blade root position"},
	"rotorApexPosition":           {KindPosition, "m", "Rotor apex position"},
	"towerShaftIntersectPosition": {KindPosition, "m", "Tower-shaft intersect position"},
	"baseLocationPosition":        {KindPosition, "m", "Base location position"},
}

// Default key sets for the loads and motions commands.
var (
	DefaultLoadKeys   = []string{"thrust", "torqueRotor", "powerRotor"}
	DefaultMotionKeys = []string{"roll", "pitch", "yaw", "surge", "sway", "heave"}
)

// LookupKey returns the catalog entry for key. Unknown keys come back as
// KindOther with the key itself as the label.
func LookupKey(key string) KeyInfo {
	if info, ok := KnownKeys[key]; ok {
		return info
	}
	return KeyInfo{Kind: KindOther, Label: key}
}

// IsGeometryKey reports whether key holds per-station blade geometry that the
// reader collapses to one row per time step.
func IsGeometryKey(key string) bool {
	return LookupKey(key).Kind == KindGeometry
}

// KeysOfKind returns the catalog keys of the given kind, sorted for stable
// display.
func KeysOfKind(kind KeyKind) []string {
	var out []string
	for key, info := range KnownKeys {
		if info.Kind == kind {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
