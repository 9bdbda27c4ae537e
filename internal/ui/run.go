// Package ui renders terminal progress for one-shot CLI operations. It is
// just another consumer of progress.Reporter events; the pipeline knows
// nothing about it.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"clipcatch/internal/progress"
)

// channelReporter forwards Reporter events into the bubbletea program.
type channelReporter struct {
	ch chan tea.Msg
}

func (r *channelReporter) Update(u progress.Update) { r.ch <- jobUpdateMsg{U: u} }
func (r *channelReporter) Log(l progress.Log)       { r.ch <- jobLogMsg{L: l} }
func (r *channelReporter) Result(res progress.Result) {
	r.ch <- jobResultMsg{R: res}
}

// Run displays a progress view for the given operation. fn is executed on a
// separate goroutine with a Reporter wired into the view; Run returns fn's
// error once the view has settled. Quitting the view (ctrl+c) cancels fn's
// context.
func Run(ctx context.Context, label string, fn func(ctx context.Context, rp progress.Reporter) error) error {
	return run(ctx, label, fn)
}

func run(ctx context.Context, label string, fn func(ctx context.Context, rp progress.Reporter) error, progOpts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventCh := make(chan tea.Msg, 64)
	rp := &channelReporter{ch: eventCh}

	m := newModel(label, eventCh)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	prog := tea.NewProgram(m, opts...)

	// Quit is sent after fn returns, so the view ends even when fn fails
	// before emitting any Result event (tool discovery, config errors).
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(ctx, rp)
		prog.Quit()
	}()

	_, runErr := prog.Run()

	// Unblock fn if the view ended first, and drain stragglers so fn's
	// reporter sends never wedge.
	cancel()
	for {
		select {
		case err := <-errCh:
			if runErr != nil {
				return runErr
			}
			return err
		case <-eventCh:
		}
	}
}
