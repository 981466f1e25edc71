package dashboard

import (
	"context"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/agent-era/devteam-sub000/internal/core/git"
)

const (
	statsTTL     = 10 * time.Second
	statsTimeout = 3 * time.Second
	statsWorkers = 4
)

// Stats is the git summary shown on one worktree row.
type Stats struct {
	Branch    string
	Clean     bool
	Additions int
	Deletions int
	Err       error
}

// statsFetchedMsg signals that a fetch batch finished and rows may repaint.
type statsFetchedMsg struct{}

// StatsFetcher loads per-worktree git stats through a TTL cache so poll
// ticks only shell out for entries that have expired.
type StatsFetcher struct {
	git   git.Git
	cache *gocache.Cache
}

// NewStatsFetcher creates a fetcher over the given git client.
func NewStatsFetcher(g git.Git) *StatsFetcher {
	return &StatsFetcher{
		git:   g,
		cache: gocache.New(statsTTL, 2*statsTTL),
	}
}

// Get returns the cached stats for a worktree path.
func (f *StatsFetcher) Get(path string) (Stats, bool) {
	v, ok := f.cache.Get(path)
	if !ok {
		return Stats{}, false
	}
	s, ok := v.(Stats)
	return s, ok
}

// Invalidate drops all cached entries so the next fetch reloads everything.
func (f *StatsFetcher) Invalidate() {
	f.cache.Flush()
}

// Fetch returns a command that loads stats for every path missing from the
// cache, or nil when everything is still fresh.
func (f *StatsFetcher) Fetch(paths []string) tea.Cmd {
	stale := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := f.cache.Get(p); !ok {
			stale = append(stale, p)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	return func() tea.Msg {
		sem := make(chan struct{}, statsWorkers)
		var wg sync.WaitGroup

		for _, path := range stale {
			wg.Add(1)
			go func(path string) {
				defer wg.Done()

				sem <- struct{}{}
				defer func() { <-sem }()

				ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
				defer cancel()

				f.cache.Set(path, f.load(ctx, path), gocache.DefaultExpiration)
			}(path)
		}

		wg.Wait()
		return statsFetchedMsg{}
	}
}

func (f *StatsFetcher) load(ctx context.Context, path string) Stats {
	var s Stats
	var err error

	s.Branch, err = f.git.Branch(ctx, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("branch lookup failed")
		s.Err = err
		return s
	}

	s.Clean, err = f.git.IsClean(ctx, path)
	if err != nil {
		s.Err = err
		return s
	}

	s.Additions, s.Deletions, err = f.git.DiffStats(ctx, path)
	if err != nil {
		s.Err = err
	}
	return s
}
