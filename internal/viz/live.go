package viz

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cablesim/internal/dynamo"
	"github.com/san-kum/cablesim/internal/shooting"
)

const (
	visibleIterates = 12
	graphWidth      = 60
	graphHeight     = 10
)

var (
	tableHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// IterateMsg carries one secant iterate into the program.
type IterateMsg shooting.Iterate

// DoneMsg ends a run. Err is set only for an invalid problem. Elapsed is
// the solver's wall time without the display pauses.
type DoneMsg struct {
	Result  *shooting.Result
	Err     error
	Elapsed time.Duration
}

// Model follows a secant search as it runs.
type Model struct {
	problem  dynamo.Problem
	opts     []shooting.Option
	delay    time.Duration
	msgs     chan tea.Msg
	quit     chan struct{}
	stop     func()
	iterates []shooting.Iterate
	result   *shooting.Result
	err      error
	elapsed  time.Duration
	showHelp bool
}

// NewModel prepares a live view of solving p. delay pauses the solver
// after each iterate so the search can be followed by eye.
func NewModel(p dynamo.Problem, delay time.Duration, opts ...shooting.Option) Model {
	quit := make(chan struct{})
	return Model{
		problem: p,
		opts:    opts,
		delay:   delay,
		msgs:    make(chan tea.Msg),
		quit:    quit,
		stop:    sync.OnceFunc(func() { close(quit) }),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.solve(), m.wait())
}

// solve runs the search on its own goroutine and streams messages over
// m.msgs, closing it after the DoneMsg. Once m.quit is closed nothing is
// sent and the search finishes without pausing.
func (m Model) solve() tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(m.msgs)
			var paused time.Duration
			observer := shooting.ObserverFunc(func(it shooting.Iterate) {
				if !m.send(IterateMsg(it)) || m.delay <= 0 {
					return
				}
				t := time.Now()
				select {
				case <-time.After(m.delay):
				case <-m.quit:
				}
				paused += time.Since(t)
			})
			opts := append(append([]shooting.Option{}, m.opts...), shooting.WithObserver(observer))
			start := time.Now()
			res, err := shooting.Solve(m.problem, opts...)
			m.send(DoneMsg{Result: res, Err: err, Elapsed: time.Since(start) - paused})
		}()
		return nil
	}
}

func (m Model) send(msg tea.Msg) bool {
	select {
	case m.msgs <- msg:
		return true
	case <-m.quit:
		return false
	}
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgs
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) Done() bool {
	return m.result != nil || m.err != nil
}

func (m Model) Result() *shooting.Result {
	return m.result
}

func (m Model) Err() error {
	return m.err
}

// Elapsed is the solver time reported with the result.
func (m Model) Elapsed() time.Duration {
	return m.elapsed
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop()
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		}
	case IterateMsg:
		m.iterates = append(m.iterates, shooting.Iterate(msg))
		return m, m.wait()
	case DoneMsg:
		m.result, m.err, m.elapsed = msg.Result, msg.Err, msg.Elapsed
		return m, m.wait()
	}
	return m, nil
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("INVALID CONFIGURATION")
	case m.result != nil:
		return statusStyle(m.result.Status.String())
	default:
		return StatusRunning.Render(fmt.Sprintf("ITERATING (%d)", len(m.iterates)))
	}
}

// residualHistory is log10|F| for the seeds, once known, and every iterate.
func (m Model) residualHistory() []float64 {
	var hist []float64
	if m.result != nil {
		for _, s := range m.result.Seeds {
			hist = append(hist, logAbs(s.Residual))
		}
	}
	for _, it := range m.iterates {
		hist = append(hist, logAbs(it.Residual))
	}
	return hist
}

func logAbs(v float64) float64 {
	a := math.Abs(v)
	if !(a > 1e-16) {
		a = 1e-16
	}
	return math.Log10(a)
}

func (m Model) View() string {
	p := m.problem
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("SHOOTING: y'' = C sqrt(1 + y'^2)") + "\n")
	fmt.Fprintf(&s, "%s\n\n", Subtle.Render(fmt.Sprintf(
		"C=%g  y(%g)=%g  y(%g)=%g  h=%g  tol=%g", p.C, p.X0, p.Y0, p.XF, p.YF, p.H, p.Tol)))
	s.WriteString(m.status() + "\n\n")

	if m.err != nil {
		s.WriteString(StatusFailed.Render(m.err.Error()) + "\n")
	}

	s.WriteString(tableHeader.Render(fmt.Sprintf("%-6s %-16s %-14s", "iter", "slope", "|F|")) + "\n")
	start := 0
	if len(m.iterates) > visibleIterates {
		start = len(m.iterates) - visibleIterates
	}
	for _, it := range m.iterates[start:] {
		fmt.Fprintf(&s, "%-6d %-16.10f %-14.3e\n", it.N, it.Slope, math.Abs(it.Residual))
	}

	if hist := m.residualHistory(); len(hist) >= 2 {
		graph := asciigraph.Plot(hist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("log10 |F|"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	if m.result != nil {
		r := m.result
		s.WriteString("\n")
		s.WriteString(row("slope", fmt.Sprintf("%.10f", r.Slope)))
		s.WriteString(row("iterations", fmt.Sprintf("%d", r.Iterations)))
		s.WriteString(row("residual", fmt.Sprintf("%.2e", r.Residual)))
		s.WriteString(row("evaluations", fmt.Sprintf("%d", r.Evaluations)))
		for _, w := range r.Warnings {
			s.WriteString(StatusWarning.Render("! "+w.Error()) + "\n")
		}
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("q, ctrl+c  quit\n?         toggle help"))
	} else {
		s.WriteString(KeyHint.Render("\nq quit  ? help"))
	}

	return s.String()
}
