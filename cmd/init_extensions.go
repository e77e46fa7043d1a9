/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go creates the shared service and hands it to extensions.
//
// Extensions register during init() but are not initialised until the
// first command that needs the index runs. The service is created once
// and shared through the extension Context.

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/jpl-au/skilld/extension"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/skills"
)

// noIndexCommands lists top-level commands that skip the initial reload.
// Built from the Indexless extensions.
var noIndexCommands map[string]bool

func buildNoIndexCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Indexless); ok {
			for _, name := range s.NoIndexCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *skills.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions builds the service over Root, loads the index and injects
// the shared context into every Initializable extension. A skills
// directory that cannot be read fails the command.
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := Config()
		if err != nil {
			initErr = err
			return
		}

		root := Root()
		svc := skills.New(root, c)
		extService = svc

		log.SetProject(root)

		if _, err := svc.Reload(ctx); err != nil {
			initErr = fmt.Errorf("loading skills: %w", err)
			return
		}

		extContext = extension.NewContext(svc, c, root)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noIndexCommands = buildNoIndexCommands()
	})
}
