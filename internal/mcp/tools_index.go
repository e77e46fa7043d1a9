// tools_index.go implements MCP tools that inspect or rebuild the index.

package mcp

import (
	"context"

	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// reloadIndex handles reload_index tool calls. With a skill argument only
// that directory is re-indexed.
func (h *handlers) reloadIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("reload_index")

	var (
		res service.ReloadResult
		err error
	)
	dir := getString(req, "skill", "")
	if dir != "" {
		res, err = h.svc.UpdateSkill(ctx, dir)
	} else {
		res, err = h.svc.Reload(ctx)
	}

	log.Event("mcp:reload_index", "reload").Author("mcp").Skill(dir).Generation(res.Generation).Detail("errors", len(res.Errors)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// getStats handles get_stats tool calls.
func (h *handlers) getStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("get_stats")
	return jsonResult(h.svc.Stats())
}

// validateSkills handles validate_skills tool calls.
func (h *handlers) validateSkills(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("validate_skills")

	report, err := h.svc.Validate(ctx)

	log.Event("mcp:validate_skills", "validate").Author("mcp").
		Detail("checked", report.SkillsChecked).
		Detail("errors", len(report.Errors)).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

// skillDrift handles skill_drift tool calls.
func (h *handlers) skillDrift(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("skill_drift")

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	report, err := h.svc.Drift(ctx, name)

	log.Event("mcp:skill_drift", "diff").Author("mcp").Skill(name).Detail("stale", report.Stale).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"report": report,
		"diff":   report.Format(false),
	})
}
