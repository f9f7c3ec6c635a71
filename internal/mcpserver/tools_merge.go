package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lucasvieiramay/apidoc/argument"
	"github.com/lucasvieiramay/apidoc/internal/cliutil"
)

type mergeInput struct {
	Source sourceInput `json:"source"           jsonschema:"The fragments to merge"`
	Format string      `json:"format,omitempty" jsonschema:"Output format: yaml (default) or json"`
}

type mergeOutput struct {
	Format     string   `json:"format"`
	Document   string   `json:"document"`
	Unresolved []string `json:"unresolved,omitempty"`
}

func (t *tools) handleMerge(ctx context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	format := input.Format
	if format == "" {
		format = cliutil.FormatYAML
	}
	if err := cliutil.ValidateOutputFormat(format, cliutil.FormatYAML, cliutil.FormatJSON); err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	c, err := input.Source.config()
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	tree, err := t.newSource(false).MergeFromConfig(ctx, c)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	data, err := cliutil.MarshalStructured(tree, format)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	return nil, mergeOutput{
		Format:     format,
		Document:   string(data),
		Unresolved: argument.Unresolved(tree),
	}, nil
}
