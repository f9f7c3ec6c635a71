package loader

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format is the serialization format of a fragment.
type Format string

const (
	// FormatYAML indicates a YAML fragment (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatJSON indicates a JSON fragment (.json).
	FormatJSON Format = "json"
	// FormatTOML indicates a TOML fragment (.toml).
	FormatTOML Format = "toml"
	// FormatUnknown indicates the format could not be determined from the path.
	FormatUnknown Format = "unknown"
)

// FormatFromPath detects the fragment format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	case "toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

// formatFromContent guesses the format of data. JSON starts with '{' or '[';
// everything else is read as YAML, which also accepts JSON.
func formatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// isFragmentFile reports whether a directory entry should be loaded.
func isFragmentFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return FormatFromPath(name) != FormatUnknown
}
