package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/baaaaaaaka/cipherrank/internal/probe"
	"github.com/baaaaaaaka/cipherrank/internal/suites"
)

func newTestScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(func() { screen.Fini() })
	return screen
}

type sizedScreen struct {
	tcell.Screen
}

func (s *sizedScreen) Init() error {
	if err := s.Screen.Init(); err != nil {
		return err
	}
	s.Screen.SetSize(80, 24)
	return nil
}

func useSimulationScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	prev := newScreen
	newScreen = func() (tcell.Screen, error) {
		return &sizedScreen{Screen: screen}, nil
	}
	t.Cleanup(func() { newScreen = prev })
	return screen
}

func readScreenLine(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var buf strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		buf.WriteRune(ch)
	}
	return buf.String()
}

func ranked(n int) []probe.Ranked {
	names := []string{"ECDHE-RSA-AES256-GCM-SHA384", "AES256-SHA", "AES128-SHA", "DES-CBC3-SHA"}
	out := make([]probe.Ranked, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, probe.Ranked{Rank: i + 1, Cipher: names[i%len(names)], Protocols: []suites.Version{suites.TLSv12}})
	}
	return out
}

func TestWatchRequiresRun(t *testing.T) {
	if _, err := Watch(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error when Run is nil")
	}
}

func TestWatchReturnsRankingAfterScanCompletes(t *testing.T) {
	screen := useSimulationScreen(t)
	finished := make(chan struct{})

	go func() {
		<-finished
		time.Sleep(100 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := Watch(ctx, Options{
		Target: "example.com:443",
		Run: func(ctx context.Context, r Reporter) ([]probe.Ranked, error) {
			defer close(finished)
			out := ranked(2)
			for i, rk := range out {
				r.Attempt(i+1, 4-i)
				r.Round(rk)
			}
			return out, nil
		},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if res.Cancelled || len(res.Ranked) != 2 {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestWatchQuitCancelsRunningScan(t *testing.T) {
	screen := useSimulationScreen(t)
	firstRound := make(chan struct{})

	go func() {
		<-firstRound
		time.Sleep(50 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := Watch(ctx, Options{
		Target: "example.com:443",
		Run: func(ctx context.Context, r Reporter) ([]probe.Ranked, error) {
			r.Round(ranked(1)[0])
			close(firstRound)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if !res.Cancelled || len(res.Ranked) != 1 {
		t.Fatalf("unexpected result %#v", res)
	}
	if ctx.Err() != nil {
		t.Fatalf("test timed out")
	}
}

func TestWatchReportsScanError(t *testing.T) {
	screen := useSimulationScreen(t)
	finished := make(chan struct{})
	go func() {
		<-finished
		time.Sleep(100 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	}()

	boom := errors.New("boom")
	_, err := Watch(context.Background(), Options{
		Run: func(ctx context.Context, r Reporter) ([]probe.Ranked, error) {
			defer close(finished)
			return nil, boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestHandleKeyQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyEscape, 0, 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, 0),
	} {
		if !handleKey(&viewState{}, ev, 0, 10) {
			t.Fatalf("expected %v to quit", ev.Name())
		}
	}
	if handleKey(&viewState{}, tcell.NewEventKey(tcell.KeyRune, 'j', 0), 0, 10) {
		t.Fatalf("j must not quit")
	}
}

func TestApplyScroll(t *testing.T) {
	state := &viewState{}
	key := func(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, 0) }

	applyScroll(state, 30, 10, key('j'))
	applyScroll(state, 30, 10, key('j'))
	if state.scroll != 2 {
		t.Fatalf("scroll = %d, want 2", state.scroll)
	}
	applyScroll(state, 30, 10, key('G'))
	if state.scroll != 20 {
		t.Fatalf("scroll = %d, want 20", state.scroll)
	}
	applyScroll(state, 30, 10, key('j'))
	if state.scroll != 20 {
		t.Fatalf("scroll past end: %d", state.scroll)
	}
	applyScroll(state, 30, 10, key('g'))
	applyScroll(state, 30, 10, key('k'))
	if state.scroll != 0 {
		t.Fatalf("scroll = %d, want 0", state.scroll)
	}
	applyScroll(state, 5, 10, tcell.NewEventKey(tcell.KeyPgDn, 0, 0))
	if state.scroll != 0 {
		t.Fatalf("short list must not scroll: %d", state.scroll)
	}
}

func TestDrawShowsRowsAndStatus(t *testing.T) {
	screen := newTestScreen(t, 80, 10)
	snap := snapshot{ranked: ranked(3), round: 4, remaining: 7, status: "probing"}

	draw(screen, &viewState{}, Options{Target: "example.com:443", Toolchain: "wire"}, snap)

	if top := readScreenLine(screen, 0); !strings.Contains(top, "cipherrank example.com:443 [wire]") {
		t.Fatalf("title line = %q", top)
	}
	if hdr := readScreenLine(screen, 1); !strings.Contains(hdr, "prio") || !strings.Contains(hdr, "ciphersuite") {
		t.Fatalf("header line = %q", hdr)
	}
	if row := readScreenLine(screen, 2); !strings.Contains(row, "ECDHE-RSA-AES256-GCM-SHA384") || !strings.Contains(row, "TLSv1.2") {
		t.Fatalf("first row = %q", row)
	}
	if row := readScreenLine(screen, 4); !strings.Contains(row, "AES128-SHA") {
		t.Fatalf("third row = %q", row)
	}
	if status := readScreenLine(screen, 9); !strings.Contains(status, "round 4, 7 candidates left") {
		t.Fatalf("status line = %q", status)
	}
}

func TestStatusText(t *testing.T) {
	if got := statusText(&viewState{}, snapshot{done: true, ranked: ranked(2)}); !strings.Contains(got, "done: 2 ciphers ranked") {
		t.Fatalf("done status = %q", got)
	}
	if got := statusText(&viewState{cancelling: true}, snapshot{}); !strings.Contains(got, "cancelling") {
		t.Fatalf("cancelling status = %q", got)
	}
	if got := statusText(&viewState{}, snapshot{done: true, err: errors.New("refused")}); !strings.Contains(got, "failed: refused") {
		t.Fatalf("error status = %q", got)
	}
}

func TestTextHelpers(t *testing.T) {
	if got := truncate("hello", 0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := truncate("hello", 3); got != "hel" {
		t.Fatalf("expected truncation, got %q", got)
	}
	if got := padRight("hi", 4); got != "hi  " {
		t.Fatalf("expected padded string, got %q", got)
	}
	if got := padRight("hello", 3); got != "hello" {
		t.Fatalf("expected no padding, got %q", got)
	}
}
