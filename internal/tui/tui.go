// Package tui shows a scan's ranking as it is discovered.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
)

var newScreen = tcell.NewScreen

const tickInterval = 250 * time.Millisecond

// Reporter receives progress from a running scan. Calls may come from any
// goroutine.
type Reporter interface {
	Round(r probe.Ranked)
	Attempt(round, remaining int)
	Status(msg string)
}

// RunFunc performs the scan, reporting through r, and stops when ctx is done.
type RunFunc func(ctx context.Context, r Reporter) ([]probe.Ranked, error)

type Options struct {
	Target    string
	Toolchain string
	Run       RunFunc
}

// Result is what the scan produced before it finished or was cancelled.
type Result struct {
	Ranked    []probe.Ranked
	Cancelled bool
}

type uiEvent struct {
	when time.Time
	kind string
}

func (e *uiEvent) When() time.Time { return e.when }

// progress is shared between the scan goroutine and the screen loop.
type progress struct {
	mu        sync.Mutex
	ranked    []probe.Ranked
	round     int
	remaining int
	status    string
	done      bool
	err       error

	screen tcell.Screen
}

func (p *progress) post() {
	_ = p.screen.PostEvent(&uiEvent{when: time.Now(), kind: "progress"})
}

func (p *progress) Round(r probe.Ranked) {
	p.mu.Lock()
	p.ranked = append(p.ranked, r)
	p.mu.Unlock()
	p.post()
}

func (p *progress) Attempt(round, remaining int) {
	p.mu.Lock()
	p.round, p.remaining = round, remaining
	p.mu.Unlock()
	p.post()
}

func (p *progress) Status(msg string) {
	p.mu.Lock()
	p.status = msg
	p.mu.Unlock()
	p.post()
}

func (p *progress) finish(ranked []probe.Ranked, err error) {
	p.mu.Lock()
	if ranked != nil {
		p.ranked = ranked
	}
	p.done, p.err = true, err
	p.mu.Unlock()
	p.post()
}

type snapshot struct {
	ranked    []probe.Ranked
	round     int
	remaining int
	status    string
	done      bool
	err       error
}

func (p *progress) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot{
		ranked:    append([]probe.Ranked(nil), p.ranked...),
		round:     p.round,
		remaining: p.remaining,
		status:    p.status,
		done:      p.done,
		err:       p.err,
	}
}

type viewState struct {
	scroll     int
	cancelling bool
}

// Watch runs opts.Run behind a full-screen view. q, Esc or Ctrl-C cancel a
// running scan and return what was ranked so far; once the scan is done the
// same keys close the view.
func Watch(ctx context.Context, opts Options) (Result, error) {
	if opts.Run == nil {
		return Result{}, errors.New("Run is required")
	}

	screen, err := newScreen()
	if err != nil {
		return Result{}, err
	}
	if err := screen.Init(); err != nil {
		return Result{}, err
	}
	defer screen.Fini()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := &progress{screen: screen, status: "connecting"}
	go func() {
		ranked, err := opts.Run(runCtx, prog)
		prog.finish(ranked, err)
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = screen.PostEvent(&uiEvent{when: time.Now(), kind: "tick"})
			case <-done:
				return
			}
		}
	}()

	state := &viewState{}
	for {
		snap := prog.snapshot()
		if snap.done && (state.cancelling || ctx.Err() != nil) {
			return Result{Ranked: snap.ranked, Cancelled: true}, nil
		}
		draw(screen, state, opts, snap)

		switch ev := screen.PollEvent().(type) {
		case nil:
			snap := prog.snapshot()
			return Result{Ranked: snap.ranked, Cancelled: !snap.done}, nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !handleKey(state, ev, len(snap.ranked), listHeight(screen)) {
				continue
			}
			if snap.done {
				return Result{Ranked: snap.ranked}, snap.err
			}
			state.cancelling = true
			cancel()
		}
	}
}

// handleKey applies navigation and reports whether the key asks to quit.
func handleKey(state *viewState, ev *tcell.EventKey, nRows, viewH int) bool {
	switch ev.Key() {
	case tcell.KeyESC, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if r := ev.Rune(); r == 'q' || r == 'Q' {
			return true
		}
	}
	applyScroll(state, nRows, viewH, ev)
	return false
}

func applyScroll(state *viewState, nRows, viewH int, ev *tcell.EventKey) {
	maxScroll := max(0, nRows-viewH)
	switch ev.Key() {
	case tcell.KeyUp:
		state.scroll--
	case tcell.KeyDown:
		state.scroll++
	case tcell.KeyPgUp:
		state.scroll -= max(1, viewH)
	case tcell.KeyPgDn:
		state.scroll += max(1, viewH)
	case tcell.KeyHome:
		state.scroll = 0
	case tcell.KeyEnd:
		state.scroll = maxScroll
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'K':
			state.scroll--
		case 'j', 'J':
			state.scroll++
		case 'g':
			state.scroll = 0
		case 'G':
			state.scroll = maxScroll
		}
	}
	state.scroll = clamp(state.scroll, 0, maxScroll)
}

// listHeight is the number of ranked rows that fit: the screen minus the box
// border, the column header and the status line.
func listHeight(screen tcell.Screen) int {
	_, h := screen.Size()
	return max(0, h-4)
}

func draw(screen tcell.Screen, state *viewState, opts Options, snap snapshot) {
	screen.Clear()
	w, h := screen.Size()
	if w < 4 || h < 4 {
		screen.Show()
		return
	}

	title := "cipherrank " + opts.Target
	if opts.Toolchain != "" {
		title += " [" + opts.Toolchain + "]"
	}
	drawBox(screen, 0, 0, w, h-1, title)

	innerW := w - 2
	rows := rankRows(snap.ranked)
	widths := columnWidths(rows)
	writeText(screen, 1, 1, truncate(formatRow(rows[0], widths), innerW), tcell.StyleDefault.Bold(true))

	viewH := listHeight(screen)
	state.scroll = clamp(state.scroll, 0, max(0, len(rows)-1-viewH))
	for i := 0; i < viewH; i++ {
		idx := 1 + state.scroll + i
		if idx >= len(rows) {
			break
		}
		writeText(screen, 1, 2+i, truncate(formatRow(rows[idx], widths), innerW), tcell.StyleDefault)
	}

	writeText(screen, 0, h-1, padRight(truncate(statusText(state, snap), w), w), tcell.StyleDefault.Reverse(true))
	screen.Show()
}

func statusText(state *viewState, snap snapshot) string {
	switch {
	case snap.done && snap.err != nil:
		return fmt.Sprintf(" failed: %v  q: quit", snap.err)
	case snap.done:
		return fmt.Sprintf(" done: %d ciphers ranked  j/k: scroll  q: quit", len(snap.ranked))
	case state.cancelling:
		return " cancelling..."
	}
	parts := []string{" " + snap.status}
	if snap.round > 0 {
		parts = append(parts, fmt.Sprintf("round %d, %d candidates left", snap.round, snap.remaining))
	}
	parts = append(parts, "q: stop")
	return strings.Join(parts, "  ")
}

func rankRows(ranked []probe.Ranked) [][]string {
	rows := [][]string{{"prio", "ciphersuite", "protocols", "pfs"}}
	for _, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.Cipher,
			strings.Join(r.ProtocolNames(), ","),
			r.PFS.String(),
		})
	}
	return rows
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

func formatRow(row []string, widths []int) string {
	var b strings.Builder
	for i, cell := range row {
		if i == len(row)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(padRight(cell, widths[i]+2))
	}
	return b.String()
}

func drawBox(screen tcell.Screen, x, y, w, h int, title string) {
	style := tcell.StyleDefault
	for i := x + 1; i < x+w-1; i++ {
		screen.SetContent(i, y, tcell.RuneHLine, nil, style)
		screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		screen.SetContent(x, j, tcell.RuneVLine, nil, style)
		screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)

	title = truncate(" "+title+" ", max(0, w-4))
	writeText(screen, x+2, y, title, style.Bold(true))
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

func padRight(s string, width int) string {
	if displayWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-displayWidth(s))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
