package stylist

import (
	"context"
	"fmt"
)

// RunOptions drives a wizard to completion without a UI.
type RunOptions struct {
	Image       *CapturedImage
	Preferences Preferences
	Task        TaskConfig
	Result      AnalysisResult
	OnProgress  func(Progress)
	Observer    Observer
}

// Run walks a fresh wizard through every phase and returns it on results.
// Progress callbacks are applied on the calling goroutine, so w is never
// touched concurrently.
func Run(ctx context.Context, opts RunOptions) (*Wizard, error) {
	w := NewWizard()
	w.SetObserver(opts.Observer)

	if err := w.Start(); err != nil {
		return nil, err
	}
	if err := w.SetImage(opts.Image); err != nil {
		return nil, err
	}
	for _, f := range Fields {
		v := opts.Preferences.Get(f)
		if v == "" {
			continue
		}
		if err := w.Select(f, v); err != nil {
			return nil, err
		}
	}
	if err := w.BeginAnalysis(); err != nil {
		return nil, fmt.Errorf("%w (missing %v)", err, w.Preferences().Missing())
	}

	progress := make(chan Progress, 8)
	complete := make(chan struct{}, 1)
	task := StartTask(ctx, opts.Task, Callbacks{
		OnProgress: func(p Progress) {
			select {
			case progress <- p:
			case <-ctx.Done():
			}
		},
		OnComplete: func() { complete <- struct{}{} },
	})
	defer task.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case p := <-progress:
			apply(w, opts, p)
		case <-complete:
			// Ticks are queued before completion; drain any still buffered.
			for len(progress) > 0 {
				apply(w, opts, <-progress)
			}
			w.Complete(opts.Result)
			return w, nil
		}
	}
}

func apply(w *Wizard, opts RunOptions, p Progress) {
	w.ApplyProgress(p)
	if opts.OnProgress != nil {
		opts.OnProgress(p)
	}
}
