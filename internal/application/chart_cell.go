package application

import (
	"sync"

	"github.com/bnema/stockboard-cli/internal/domain"
)

// ChartCell owns the one chart the visualizer shows and the generation counter of trend
// requests. Every mutation runs under the same lock, so a response can only be applied
// while its token is still the latest one issued.
type ChartCell struct {
	mu        sync.Mutex
	issued    uint64
	instances uint64
	current   *domain.Chart
	teardown  func(domain.Chart)
}

// NewChartCell builds an empty cell. teardown, when set, sees every chart that gets
// replaced, before its successor is installed.
func NewChartCell(teardown func(domain.Chart)) *ChartCell {
	return &ChartCell{teardown: teardown}
}

// Begin issues a new request token and runs onIssue under the lock.
func (c *ChartCell) Begin(onIssue func()) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	if onIssue != nil {
		onIssue()
	}

	return c.issued
}

// Commit runs apply only if token is still the latest issued one and reports whether it
// ran. install tears the current chart down and installs the next one, returning a copy of
// what was installed.
func (c *ChartCell) Commit(token uint64, apply func(install func(domain.Chart) domain.Chart)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.issued {
		return false
	}

	apply(c.install)
	return true
}

func (c *ChartCell) install(next domain.Chart) domain.Chart {
	if c.current != nil {
		old := *c.current
		c.current = nil
		if c.teardown != nil {
			c.teardown(old)
		}
	}

	c.instances++
	next.Instance = c.instances
	c.current = &next

	return next.Clone()
}

// Mutate edits the current chart in place. It reports false when no chart exists.
func (c *ChartCell) Mutate(fn func(chart *domain.Chart)) (domain.Chart, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return domain.Chart{}, false
	}

	fn(c.current)
	return c.current.Clone(), true
}

func (c *ChartCell) Current() (domain.Chart, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return domain.Chart{}, false
	}

	return c.current.Clone(), true
}
