// resources.go implements MCP resource handlers for skill documents.
//
// URIs take the form skill://{name} for the primary SKILL.md and
// skill://{name}/{sub_skill} for a sub-skill document.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/skilld/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyName indicates a resource URI without a skill name.
	ErrEmptyName = errors.New("empty skill name")
)

// readSkillResource handles both skill resource templates.
func (h *handlers) readSkillResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	name, sub, err := parseSkillURI(uri)
	if err != nil {
		return nil, err
	}

	var content string
	if sub == "" {
		sc, err := h.svc.ReadSkill(name)
		log.Event("mcp:resource", "read").Author("mcp").Skill(name).Write(err)
		if err != nil {
			return nil, err
		}
		content = sc.Content
	} else {
		sc, err := h.svc.ReadSubSkill(name, sub)
		log.Event("mcp:resource", "read").Author("mcp").Skill(name).SubSkill(sub).Write(err)
		if err != nil {
			return nil, err
		}
		content = sc.Content
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

// parseSkillURI extracts the skill and optional sub-skill from a resource
// URI.
func parseSkillURI(uri string) (name, sub string, err error) {
	const prefix = "skill://"
	if !strings.HasPrefix(uri, prefix) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.Trim(strings.TrimPrefix(uri, prefix), "/")
	if rest == "" {
		return "", "", ErrEmptyName
	}

	name, sub, _ = strings.Cut(rest, "/")
	if strings.Contains(sub, "/") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return name, sub, nil
}
