// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the apidoc pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lucasvieiramay/apidoc"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/source"
)

const serverInstructions = `apidoc MCP server: builds API documentation from YAML, JSON and TOML fragments.

Fragments are loaded from directories (lexical order, non-recursive) and files, merged (later fragments win), extends references are resolved and ${name} placeholders are substituted with the given arguments. The build tool then applies the version and category filters and returns the ordered outline; the merge tool returns the raw merged tree.

Configuration: All defaults are configurable via APIDOC_* environment variables set in your MCP client config.

Key settings:
- APIDOC_CONFIG: configuration file used when a request names none
- APIDOC_STRICT (default: false): fail on methods naming an unknown category
- APIDOC_CATEGORY_LIMIT (default: 100): default page size of the build outline
- APIDOC_REQUEST_TIMEOUT (default: 30s): time limit of one tool call
- APIDOC_MAX_FILE_SIZE (default: 10MiB): largest fragment accepted
- APIDOC_CACHE_ENABLED (default: true): cache build results
- APIDOC_CACHE_TTL (default: 15m): lifetime of a cached build

Caching: build results are cached per session, keyed by the configuration and the size and modification time of every fragment, so editing a fragment invalidates the entry.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. Logs go to logger, which must not write to stdout.
func Run(ctx context.Context, logger loader.Logger) error {
	if cfg.CacheEnabled {
		resultCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "apidoc", Version: apidoc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, &tools{logger: loader.OrNop(logger)})
	return server.Run(ctx, &mcp.StdioTransport{})
}

// tools carries the state shared by the tool handlers.
type tools struct {
	logger loader.Logger
}

func registerAllTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "build",
		Description: "Build the API documentation from fragments and return its outline: versions sorted by name, then displayed categories in order with their methods and the versions declaring each. Filter with include_versions/exclude_versions and include_categories/exclude_categories (includes win over excludes). Use offset/limit to page through categories; the default limit is configurable via APIDOC_CATEGORY_LIMIT. Placeholders left without an argument are listed in unresolved.",
	}, t.handleBuild)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge the fragments, resolve extends references and substitute the arguments, then return the raw tree as YAML (default) or JSON. Filters do not apply. Useful to inspect what a build reads.",
	}, t.handleMerge)
}

// newSource returns a pipeline source configured from the server defaults.
func (t *tools) newSource(strict bool) *source.Source {
	return &source.Source{
		Loader:           &loader.Loader{Logger: t.logger, MaxFileSize: cfg.MaxFileSize},
		Logger:           t.logger,
		StrictReferences: strict,
	}
}

// withTimeout bounds one tool call by cfg.RequestTimeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, cfg.RequestTimeout)
}

// paginate returns items[offset:offset+limit], clipped to the slice. The
// limit defaults to cfg.CategoryLimit and is capped at cfg.MaxLimit; an
// offset outside the slice yields nil.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	if limit <= 0 {
		limit = cfg.CategoryLimit
	}
	limit = min(limit, cfg.MaxLimit, len(items)-offset)
	return items[offset : offset+limit]
}

// pathPattern matches absolute paths under the usual system roots. Tool errors
// often quote fragment paths, which clients should not see.
var pathPattern = regexp.MustCompile(`/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllLiteralString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
