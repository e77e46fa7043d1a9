// Package mcp implements the Model Context Protocol server, exposing skill
// lookup and search to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/config"
	"github.com/jpl-au/skilld/internal/index"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/jpl-au/skilld/internal/skills"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio for the skills directory at root.
//
// A root that cannot be read is logged and the server starts anyway with
// an empty index; reload_index can be called once the directory exists.
// When enabled in cfg the file watcher runs until the server stops.
func Serve(root string, cfg *config.Config) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := skills.New(root, cfg, skills.WithLogger(logger))
	defer svc.Close()

	log.SetProject(root)

	res, err := svc.Reload(ctx)
	var scanErr *index.ScanError
	switch {
	case errors.As(err, &scanErr):
		slog.Error("skills directory unreadable, starting with an empty index", "root", root, "error", err)
	case err != nil:
		return err
	default:
		slog.Info("index built", "skills", res.SkillCount, "content_files", res.ContentFileCount, "errors", len(res.Errors))
	}

	svc.Watch(ctx)

	s := NewServer(svc, extension.NewContext(svc, cfg, root))

	slog.Info("skilld MCP server ready", "version", Version, "transport", "stdio", "root", root)

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every resource and tool registered.
// Extension tools receive extCtx.
func NewServer(svc service.Service, extCtx extension.Context) *server.MCPServer {
	s := server.NewMCPServer(
		"skilld",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	h := &handlers{svc: svc}
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, extCtx)
	return s
}

// handlers provides MCP request handlers with access to the skill service.
type handlers struct {
	svc service.Service
}

// registerResources adds URI-based access to skill bodies.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"skill://{name}",
			"Skill",
			mcp.WithTemplateDescription("Primary SKILL.md of a skill"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readSkillResource,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"skill://{name}/{sub_skill}",
			"Sub-skill",
			mcp.WithTemplateDescription("Document of one sub-skill"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readSkillResource,
	)
}

// registerTools exposes skill operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("list_skills",
			mcp.WithDescription("List every indexed skill with its description and sub-skills. Start here to discover what is available."),
		),
		h.listSkills,
	)

	s.AddTool(
		mcp.NewTool("get_skill",
			mcp.WithDescription("Load the main SKILL.md of a skill"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Skill name (e.g. 'forms')")),
		),
		h.getSkill,
	)

	s.AddTool(
		mcp.NewTool("get_sub_skill",
			mcp.WithDescription("Load one sub-skill document of a skill"),
			mcp.WithString("domain", mcp.Required(), mcp.Description("Skill name")),
			mcp.WithString("sub_skill", mcp.Required(), mcp.Description("Sub-skill name (e.g. 'react')")),
		),
		h.getSubSkill,
	)

	s.AddTool(
		mcp.NewTool("get_skills_batch",
			mcp.WithDescription("Load several skills or sub-skills in one call. Failures are reported per item."),
			mcp.WithArray("requests",
				mcp.Required(),
				mcp.Description("Items to load: [{\"domain\": \"forms\", \"sub_skill\": \"react\"}, {\"domain\": \"auth\"}]"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"domain":    map[string]any{"type": "string"},
						"sub_skill": map[string]any{"type": "string"},
					},
					"required": []string{"domain"},
				}),
			),
		),
		h.getSkillsBatch,
	)

	s.AddTool(
		mcp.NewTool("search_skills",
			mcp.WithDescription("Rank skills and sub-skills by name, tags, description and triggers"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from search.skill_limit)")),
		),
		h.searchSkills,
	)

	s.AddTool(
		mcp.NewTool("search_content",
			mcp.WithDescription("Full-text search across skill documents, with snippets"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query; exact phrases rank highest")),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default from search.content_limit)")),
		),
		h.searchContent,
	)

	s.AddTool(
		mcp.NewTool("reload_index",
			mcp.WithDescription("Rebuild the index from disk and report validation errors"),
			mcp.WithString("skill", mcp.Description("Re-index only this skill directory")),
		),
		h.reloadIndex,
	)

	s.AddTool(
		mcp.NewTool("get_stats",
			mcp.WithDescription("Usage counters, recent searches, index generation and watcher status"),
		),
		h.getStats,
	)

	s.AddTool(
		mcp.NewTool("validate_skills",
			mcp.WithDescription("Check every skill directory for errors and warnings without changing the index"),
		),
		h.validateSkills,
	)

	s.AddTool(
		mcp.NewTool("skill_drift",
			mcp.WithDescription("Show how a skill's files on disk differ from the indexed copy"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Skill name")),
		),
		h.skillDrift,
	)

	s.AddTool(
		mcp.NewTool("config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.skill_limit) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("config_set",
			mcp.WithDescription("Set a configuration value. Applies on the next server start."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}

// registerExtensionTools adds the tools contributed by extensions, binding
// each handler to extCtx.
func registerExtensionTools(s *server.MCPServer, extCtx extension.Context) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
}
