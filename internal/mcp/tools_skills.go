// tools_skills.go implements MCP tools that load skill documents.

package mcp

import (
	"context"

	"github.com/jpl-au/skilld/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// listSkills handles list_skills tool calls.
func (h *handlers) listSkills(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("list_skills")

	skills := h.svc.ListSkills()

	log.Event("mcp:list_skills", "list").Author("mcp").Detail("count", len(skills)).Write(nil)

	return jsonResult(skills)
}

// getSkill handles get_skill tool calls.
func (h *handlers) getSkill(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("get_skill")

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	sc, err := h.svc.ReadSkill(name)

	log.Event("mcp:get_skill", "read").Author("mcp").Skill(name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sc)
}

// getSubSkill handles get_sub_skill tool calls.
func (h *handlers) getSubSkill(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("get_sub_skill")

	domain, err := req.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError("domain is required"), nil //nolint:nilerr
	}
	sub, err := req.RequireString("sub_skill")
	if err != nil {
		return mcp.NewToolResultError("sub_skill is required"), nil //nolint:nilerr
	}

	sc, err := h.svc.ReadSubSkill(domain, sub)

	log.Event("mcp:get_sub_skill", "read").Author("mcp").Skill(domain).SubSkill(sub).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sc)
}

// getSkillsBatch handles get_skills_batch tool calls.
func (h *handlers) getSkillsBatch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("get_skills_batch")

	reqs := getRequests(req, "requests")
	if len(reqs) == 0 {
		return mcp.NewToolResultError("requests must list at least one {\"domain\": ...} item"), nil
	}

	items := h.svc.Batch(reqs)

	failed := 0
	for _, it := range items {
		if it.Error != "" {
			failed++
		}
	}
	log.Event("mcp:get_skills_batch", "read").Author("mcp").Detail("count", len(items)).Detail("failed", failed).Write(nil)

	return jsonResult(items)
}
