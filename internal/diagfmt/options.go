package diagfmt

import "fmt"

// PathMode specifies how document paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "auto":
		return PathModeAuto, nil
	case "abs":
		return PathModeAbsolute, nil
	case "rel":
		return PathModeRelative, nil
	case "base":
		return PathModeBasename, nil
	default:
		return PathModeAuto, fmt.Errorf("invalid path mode: %q (expected: auto|abs|rel|base)", s)
	}
}

// PrettyOpts configures pretty-printing of records.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// ShowKind prefixes each record with the analysis kind it came from.
	ShowKind bool
}

// JSONOpts configures JSON output of records.
type JSONOpts struct {
	IncludePositions bool // add line/col
	Max              int  // truncate output, 0 = unlimited
}
