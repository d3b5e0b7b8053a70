package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fontdiag/fontdiag/pkg/probe"
)

// --- tool definitions ---

func getReportTool() mcp.Tool {
	return mcp.NewTool("get_report",
		mcp.WithDescription("Run every configuration probe and return the full font/DPI diagnostic report."),
		mcp.WithString("font", mcp.Description("Font description to match instead of the theme default, e.g. 'DejaVu Sans 11'")),
		mcp.WithBoolean("bold", mcp.Description("Request bold weight in the fontconfig query")),
		mcp.WithBoolean("italic", mcp.Description("Request italic slant in the fontconfig query")),
	)
}

func listProbesTool() mcp.Tool {
	return mcp.NewTool("list_probes",
		mcp.WithDescription("List the configuration probes in run order with a one-line description each."),
	)
}

func runProbeTool() mcp.Tool {
	return mcp.NewTool("run_probe",
		mcp.WithDescription("Run a single configuration probe and return its report section."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Probe name, as returned by list_probes")),
	)
}

func matchFontTool() mcp.Tool {
	return mcp.NewTool("match_font",
		mcp.WithDescription("Resolve a font description through fontconfig and return the matched attributes."),
		mcp.WithString("font", mcp.Required(), mcp.Description("Font description, e.g. 'Sans Bold 10' or 'Sans 10px'")),
		mcp.WithBoolean("bold", mcp.Description("Request bold weight")),
		mcp.WithBoolean("italic", mcp.Description("Request italic slant")),
	)
}

// --- handlers ---

func optionsFromArgs(args map[string]any) probe.Options {
	var opts probe.Options
	if v, ok := args["font"].(string); ok {
		opts.FontDesc = v
	}
	if v, ok := args["bold"].(bool); ok {
		opts.Bold = v
	}
	if v, ok := args["italic"].(bool); ok {
		opts.Italic = v
	}
	return opts
}

// cacheKey identifies a probe invocation for result reuse.
func cacheKey(kind, name string, opts probe.Options) string {
	return fmt.Sprintf("%s\x00%s\x00%q\x00%t\x00%t", kind, name, opts.FontDesc, opts.Bold, opts.Italic)
}

func (s *Server) handleGetReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := optionsFromArgs(req.GetArguments())
	key := cacheKey("report", "", opts)
	if text, ok := s.cache.Get(key); ok {
		return mcp.NewToolResultText(text), nil
	}
	text, err := s.runner.ReportText(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Add(key, text)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleListProbes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, info := range s.runner.Infos() {
		fmt.Fprintf(&b, "%s: %s\n", info.Name, info.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleRunProbe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("missing required argument: name"), nil
	}
	opts := optionsFromArgs(args)
	key := cacheKey("probe", name, opts)
	if text, ok := s.cache.Get(key); ok {
		return mcp.NewToolResultText(text), nil
	}
	text, err := s.runner.ProbeText(ctx, name, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Add(key, text)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleMatchFont(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	font, ok := args["font"].(string)
	if !ok || font == "" {
		return mcp.NewToolResultError("missing required argument: font"), nil
	}
	opts := optionsFromArgs(args)
	opts.FontDesc = font
	key := cacheKey("probe", "fontconfig-match", opts)
	if text, ok := s.cache.Get(key); ok {
		return mcp.NewToolResultText(text), nil
	}
	text, err := s.runner.ProbeText(ctx, "fontconfig-match", opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Add(key, text)
	return mcp.NewToolResultText(text), nil
}
