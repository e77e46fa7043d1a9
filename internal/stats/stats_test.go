package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tr := New()
	tr.Tool("get_skill")
	tr.Tool("get_skill")
	tr.Tool("search_skills")
	tr.Load("forms")
	tr.Search("skills", "react", 3)

	u := tr.Snapshot()
	assert.Equal(t, map[string]int64{"get_skill": 2, "search_skills": 1}, u.ToolCalls)
	assert.Equal(t, map[string]int64{"forms": 1}, u.SkillLoads)
	require.Len(t, u.RecentSearches, 1)
	assert.Equal(t, "react", u.RecentSearches[0].Query)
	assert.Equal(t, 3, u.RecentSearches[0].Results)
	assert.False(t, u.Since.IsZero())

	u.ToolCalls["get_skill"] = 99
	assert.Equal(t, int64(2), tr.Snapshot().ToolCalls["get_skill"])
}

func TestTracker_RecentSearches(t *testing.T) {
	tr := New()
	for i := range MaxSearches + 25 {
		tr.Search("content", fmt.Sprintf("q%d", i), i)
	}

	u := tr.Snapshot()
	require.Len(t, u.RecentSearches, RecentSearches)
	assert.Equal(t, fmt.Sprintf("q%d", MaxSearches+25-RecentSearches), u.RecentSearches[0].Query)
	assert.Equal(t, fmt.Sprintf("q%d", MaxSearches+24), u.RecentSearches[RecentSearches-1].Query)
	assert.Len(t, tr.searches, MaxSearches)
}

func TestTracker_Concurrent(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tr.Tool("x")
				tr.Search("skills", "q", 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1000), tr.Snapshot().ToolCalls["x"])
}
