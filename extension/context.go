// context.go defines the Context handed to extensions during Init.
//
// Extensions register before any service exists, so they receive the
// service, config and skills root later through this interface. Tests can
// supply their own implementation.

package extension

import (
	"github.com/jpl-au/skilld/internal/config"
	"github.com/jpl-au/skilld/internal/service"
)

// Context provides extensions controlled access to skilld internals.
type Context interface {
	// Service returns the skill service.
	Service() service.Service

	// Config returns the loaded user configuration.
	Config() *config.Config

	// Root returns the skills directory the service was built over.
	Root() string
}

type extContext struct {
	svc  service.Service
	cfg  *config.Config
	root string
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config, root string) Context {
	return &extContext{svc: svc, cfg: cfg, root: root}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Root() string { return c.root }
