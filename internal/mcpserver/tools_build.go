package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/dto"
	"github.com/lucasvieiramay/apidoc/source"
)

type buildInput struct {
	Source            sourceInput `json:"source"                       jsonschema:"The fragments to build from"`
	IncludeVersions   []string    `json:"include_versions,omitempty"   jsonschema:"Display only these versions"`
	ExcludeVersions   []string    `json:"exclude_versions,omitempty"   jsonschema:"Hide these versions"`
	IncludeCategories []string    `json:"include_categories,omitempty" jsonschema:"Display only these categories"`
	ExcludeCategories []string    `json:"exclude_categories,omitempty" jsonschema:"Hide these categories"`
	Strict            *bool       `json:"strict,omitempty"             jsonschema:"Fail on methods naming an unknown category (default from APIDOC_STRICT)"`
	Offset            int         `json:"offset,omitempty"             jsonschema:"Index of the first category returned"`
	Limit             int         `json:"limit,omitempty"              jsonschema:"Maximum number of categories returned"`
}

type buildOutput struct {
	Versions        []dto.VersionSummary  `json:"versions,omitempty"`
	Categories      []dto.CategorySummary `json:"categories,omitempty"`
	TotalCategories int                   `json:"total_categories"`
	Stats           dto.Stats             `json:"stats"`
	Warnings        []string              `json:"warnings,omitempty"`
	Unresolved      []string              `json:"unresolved,omitempty"`
}

// config resolves the source and lays the filters on top of it.
func (in buildInput) config() (*config.Config, error) {
	c, err := in.Source.config()
	if err != nil {
		return nil, err
	}
	return config.Merge(c, &config.Config{
		Filter: config.Filter{
			Versions:   config.FilterRule{Includes: in.IncludeVersions, Excludes: in.ExcludeVersions},
			Categories: config.FilterRule{Includes: in.IncludeCategories, Excludes: in.ExcludeCategories},
		},
	})
}

func (t *tools) handleBuild(ctx context.Context, _ *mcp.CallToolRequest, input buildInput) (*mcp.CallToolResult, buildOutput, error) {
	c, err := input.config()
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}
	strict := cfg.StrictReferences
	if input.Strict != nil {
		strict = *input.Strict
	}

	result, err := t.build(ctx, c, strict)
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	summary := result.Root.Summarize()
	return nil, buildOutput{
		Versions:        summary.Versions,
		Categories:      paginate(summary.Categories, input.Offset, input.Limit),
		TotalCategories: len(summary.Categories),
		Stats:           summary.Stats,
		Warnings:        result.Warnings,
		Unresolved:      result.Unresolved,
	}, nil
}

// build runs the pipeline for c, using the result cache when enabled.
func (t *tools) build(ctx context.Context, c *config.Config, strict bool) (*source.Result, error) {
	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(c, strict)
	}
	if key != "" {
		if cached := resultCache.get(key); cached != nil {
			t.logger.Debug("build served from cache", "key", key)
			return cached, nil
		}
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	result, err := t.newSource(strict).Run(ctx, c)
	if err != nil {
		return nil, err
	}

	if key != "" {
		resultCache.putWithTTL(key, result, cfg.CacheTTL)
	}
	return result, nil
}
