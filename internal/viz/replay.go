package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mcsim/internal/mcmc"
)

type TickMsg time.Time

const (
	minSpeed = 1
	maxSpeed = 512
)

// Replay steps through a stored chain sample by sample. It tracks the
// running mean and how many moves were rejected (repeated samples).
type Replay struct {
	title   string
	samples []mcmc.State

	pos      int
	speed    int
	paused   bool
	rejected int
	sum      mcmc.State

	width, height int
}

func NewReplay(title string, samples []mcmc.State) Replay {
	r := Replay{
		title:   title,
		samples: samples,
		speed:   4,
		width:   80,
		height:  24,
	}
	r.reset()
	return r
}

func (r *Replay) reset() {
	r.pos = 0
	r.rejected = 0
	r.sum = nil
	if len(r.samples) > 0 {
		r.sum = r.samples[0].Clone()
	}
}

func (r Replay) Position() int   { return r.pos }
func (r Replay) Speed() int      { return r.speed }
func (r Replay) Paused() bool    { return r.paused }
func (r Replay) Rejections() int { return r.rejected }
func (r Replay) Done() bool      { return r.pos >= len(r.samples)-1 }

// Mean is the running mean of samples[0..pos].
func (r Replay) Mean() mcmc.State {
	if r.sum == nil {
		return nil
	}
	return r.sum.Scale(1 / float64(r.pos+1))
}

func (r *Replay) forward() {
	if r.Done() {
		return
	}
	r.pos++
	if r.samples[r.pos].Equal(r.samples[r.pos-1]) {
		r.rejected++
	}
	r.sum = r.sum.Add(r.samples[r.pos])
}

func (r *Replay) back() {
	if r.pos == 0 {
		return
	}
	if r.samples[r.pos].Equal(r.samples[r.pos-1]) {
		r.rejected--
	}
	r.sum = r.sum.Sub(r.samples[r.pos])
	r.pos--
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (r Replay) Init() tea.Cmd {
	return tick()
}

func (r Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return r, tea.Quit
		case " ":
			r.paused = !r.paused
		case "right", "l":
			r.forward()
		case "left", "h":
			r.back()
		case "+", "=":
			r.speed = min(r.speed*2, maxSpeed)
		case "-", "_":
			r.speed = max(r.speed/2, minSpeed)
		case "r":
			r.reset()
		}
		return r, nil
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		return r, nil
	case TickMsg:
		if !r.paused {
			for i := 0; i < r.speed && !r.Done(); i++ {
				r.forward()
			}
		}
		return r, tick()
	}
	return r, nil
}

func (r Replay) View() string {
	if len(r.samples) == 0 {
		return Warning.Render("no samples") + "\n"
	}

	status := StatusRunning.Render("▶ playing")
	if r.paused {
		status = StatusPaused.Render("⏸ paused")
	}
	if r.Done() {
		status = Subtle.Render("■ end")
	}

	header := Title.Render(r.title) + "  " + status + "  " +
		Subtle.Render(fmt.Sprintf("sample %d/%d  speed %dx", r.pos+1, len(r.samples), r.speed))

	plotW := max(r.width/2-4, 10)
	plotH := max(r.height-12, 4)

	upto := r.samples[:r.pos+1]
	trace := make([]float64, len(upto))
	for i, s := range upto {
		trace[i] = s[0]
	}

	var picture string
	if len(r.samples[0]) >= 2 {
		ys := make([]float64, len(upto))
		for i, s := range upto {
			ys[i] = s[1]
		}
		picture = Scatter(trace, ys, plotW, plotH)
	} else {
		picture = Histogram(trace, min(plotH, 20), plotW)
	}

	var stats strings.Builder
	current := r.samples[r.pos]
	mean := r.Mean()
	for d := range current {
		stats.WriteString(Metric(fmt.Sprintf("x%d", d), current[d]))
		stats.WriteString("  ")
		stats.WriteString(Metric("mean", mean[d]))
		stats.WriteString("\n")
	}
	if r.pos > 0 {
		rate := 1 - float64(r.rejected)/float64(r.pos)
		stats.WriteString(Metric("acceptance", rate))
		stats.WriteString("\n")
		stats.WriteString(ProgressBar(rate, 20))
		stats.WriteString("\n")
	}
	stats.WriteString("\n")
	stats.WriteString(Sparkline(trace, plotW))

	body := lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(picture), Panel.Render(stats.String()))
	keys := KeyHint.Render("space pause · ←/→ step · +/- speed · r restart · q quit")

	return header + "\n" + body + "\n" + keys + "\n"
}
