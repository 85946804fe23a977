package application

import (
	"sync"

	"github.com/bnema/stockboard-cli/internal/domain"
)

type recordingPostView struct {
	posts  []domain.Post
	alerts []string
	resets int
}

func (v *recordingPostView) AppendPost(post domain.Post) { v.posts = append(v.posts, post) }
func (v *recordingPostView) Alert(message string)        { v.alerts = append(v.alerts, message) }
func (v *recordingPostView) ResetForm()                  { v.resets++ }

type recordingTrendView struct {
	mu       sync.Mutex
	events   []string
	errors   []string
	cpuCores []int
	charts   []domain.Chart
}

func (v *recordingTrendView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "loading")
}

func (v *recordingTrendView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "error")
	v.errors = append(v.errors, message)
}

func (v *recordingTrendView) ShowCPUCores(cores int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "cpu")
	v.cpuCores = append(v.cpuCores, cores)
}

func (v *recordingTrendView) ShowChart(chart domain.Chart) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "chart")
	v.charts = append(v.charts, chart)
}

func (v *recordingTrendView) lastChart() (domain.Chart, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.charts) == 0 {
		return domain.Chart{}, false
	}
	return v.charts[len(v.charts)-1], true
}

type fixedColors struct {
	next uint8
}

func (c *fixedColors) NextColor() domain.RGB {
	c.next++
	return domain.RGB{R: c.next, G: 0, B: 0}
}
