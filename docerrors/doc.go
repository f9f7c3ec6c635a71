// Package docerrors provides structured error types for the apidoc pipeline.
//
// Import path: github.com/lucasvieiramay/apidoc/docerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a malformed fragment from a broken "extends"
// reference or a misconfigured run.
//
// # Error Types
//
//   - [StructureError]: a fragment or merged tree has the wrong shape for a stage
//   - [ReferenceError]: an "extends" or category reference names a missing key
//   - [CycleError]: an "extends" chain refers back to itself
//   - [ParseError]: a fragment file could not be decoded
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrStructure]: Matches any [StructureError]
//   - [ErrReference]: Matches any [ReferenceError] and any [CycleError]
//   - [ErrCycle]: Matches any [CycleError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	root, err := source.BuildWithOptions(source.WithConfigFile("apidoc.yaml"))
//	if err != nil {
//	    var cycle *docerrors.CycleError
//	    if errors.As(err, &cycle) {
//	        fmt.Println("extends cycle:", strings.Join(cycle.Chain, " -> "))
//	    }
//	}
package docerrors
