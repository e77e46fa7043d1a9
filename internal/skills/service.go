// Package skills implements service.Service over a skills directory.
//
// The Service owns one index.Index and reads the current snapshot once per
// call. Skill bodies returned to callers are read from disk at request time
// through the same confined filesystem the index is built from, so they are
// never the normalised text held in the index.
package skills

import (
	"context"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jpl-au/skilld/internal/config"
	"github.com/jpl-au/skilld/internal/index"
	"github.com/jpl-au/skilld/internal/log"
	"github.com/jpl-au/skilld/internal/search"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/jpl-au/skilld/internal/skill"
	"github.com/jpl-au/skilld/internal/stats"
	"github.com/jpl-au/skilld/internal/watch"
)

var _ service.Service = (*Service)(nil)

// Service provides skill index operations.
type Service struct {
	root   string
	fsys   fs.FS
	layout skill.Layout
	idx    *index.Index
	log    *slog.Logger

	limits       search.Limits
	skillLimit   int
	contentLimit int

	usage   *stats.Tracker
	watcher *watch.Watcher

	watchEnabled bool
	maxDepth     int

	mu          sync.Mutex
	stopWatcher context.CancelFunc
}

// Option customises a Service.
type Option func(*Service)

// WithFS reads skills from fsys instead of the directory at root. Used by
// tests with fstest.MapFS.
func WithFS(fsys fs.FS) Option {
	return func(s *Service) { s.fsys = fsys }
}

// WithLogger sets the operational logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns a service over the skills directory at root, configured by
// cfg. The index starts empty; call Reload to populate it.
func New(root string, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	layout := skill.DefaultLayout()
	layout.StrictNames = cfg.StrictNames()

	s := &Service{
		root:   root,
		fsys:   skill.Dir(root),
		layout: layout,
		log:    slog.New(slog.DiscardHandler),
		limits: search.Limits{
			MaxLength:  cfg.MaxQueryLength(),
			MaxWords:   cfg.MaxQueryWords(),
			MaxResults: cfg.MaxLimit(),
		},
		skillLimit:   cfg.SkillLimit(),
		contentLimit: cfg.ContentLimit(),
		usage:        stats.New(),
		watchEnabled: cfg.WatchEnabled(),
		maxDepth:     cfg.MaxDepth(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.idx = index.New(index.NewBuilder(s.fsys, root, layout), s.log)
	s.watcher = watch.New(watch.TargetFunc(s.watchRebuild), cfg.Debounce(), s.log)
	return s
}

// Root returns the skills directory.
func (s *Service) Root() string {
	return s.root
}

// Index returns the underlying index.
func (s *Service) Index() *index.Index {
	return s.idx
}

// Close stops the watcher.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopWatcher != nil {
		s.stopWatcher()
		s.stopWatcher = nil
	}
	return nil
}

// Reload rebuilds the index and waits for the result.
func (s *Service) Reload(ctx context.Context) (service.ReloadResult, error) {
	snap, err := s.idx.Rebuild(ctx)
	if err != nil {
		return service.ReloadResult{}, err
	}
	return reloadResult(snap), nil
}

// UpdateSkill re-indexes one skill directory.
func (s *Service) UpdateSkill(ctx context.Context, dir string) (service.ReloadResult, error) {
	snap, err := s.idx.UpdateSkill(ctx, dir)
	if err != nil {
		return service.ReloadResult{}, err
	}
	return reloadResult(snap), nil
}

func reloadResult(snap *index.Snapshot) service.ReloadResult {
	errs := snap.Errors()
	if errs == nil {
		errs = []string{}
	}
	return service.ReloadResult{
		SkillCount:       len(snap.Skills()),
		ContentFileCount: snap.ContentCount(),
		Errors:           errs,
		BuiltAt:          snap.BuiltAt(),
		Generation:       snap.Generation(),
	}
}

// Watch starts the file watcher unless disabled by configuration.
func (s *Service) Watch(ctx context.Context) {
	if !s.watchEnabled {
		return
	}
	src, err := watch.NewFSSource(s.root, s.maxDepth)
	if err != nil {
		s.watcher.Degrade(err)
		return
	}
	s.WatchSource(ctx, src)
}

// WatchSource runs the watcher on src in the background.
func (s *Service) WatchSource(ctx context.Context, src watch.Source) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.stopWatcher != nil {
		s.stopWatcher()
	}
	s.stopWatcher = cancel
	s.mu.Unlock()

	go s.watcher.Run(ctx, src)
}

// WatchStatus reports the watcher state.
func (s *Service) WatchStatus() watch.Status {
	return s.watcher.Status()
}

// watchRebuild runs a rebuild requested by the watcher and records it in
// the audit log.
func (s *Service) watchRebuild() {
	go func() {
		snap, err := s.idx.Rebuild(context.Background())
		var gen uint64
		if snap != nil {
			gen = snap.Generation()
		}
		log.Event("watch:rebuild", "reload").
			Author("watcher").
			Generation(gen).
			Write(err)
	}()
}

// Track counts a call of the named tool or command.
func (s *Service) Track(tool string) {
	s.usage.Tool(tool)
}

// Stats returns usage counters and index state.
func (s *Service) Stats() service.Stats {
	snap := s.idx.Current()
	return service.Stats{
		Usage:        s.usage.Snapshot(),
		TotalSkills:  len(snap.Skills()),
		ContentFiles: snap.ContentCount(),
		Index:        s.idx.State(),
		Watch:        s.watcher.Status(),
	}
}
