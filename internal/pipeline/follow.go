package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/nxadm/tail"

	"github.com/fluxbit/logfold/internal/engine"
)

// Follow tails a JSONL file and processes it in windows, flushing when the
// window fills or after the configured quiet interval. Each completed
// window is delivered to emit. Returns when the context is cancelled or
// the tail closes; the pending window is flushed either way.
func (p *Pipeline) Follow(ctx context.Context, path string, emit func(*Result)) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow: true,
		ReOpen: true,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	window := make([]string, 0, p.cfg.Follow.WindowSize)
	ticker := time.NewTicker(p.cfg.Follow.Interval())
	defer ticker.Stop()

	flush := func() {
		if len(window) == 0 {
			return
		}
		res, err := p.ProcessBatch(window)
		window = window[:0]
		if err != nil {
			// A window where nothing parsed is reported and skipped; the
			// next window starts clean.
			if errors.Is(err, engine.ErrEmptyPopulation) {
				log.Printf("Window skipped: %v", err)
				return
			}
			log.Printf("Window processing error: %v", err)
			return
		}
		emit(res)
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			_ = t.Stop()
			return nil

		case line, ok := <-t.Lines:
			if !ok {
				flush()
				return nil
			}
			if line.Err != nil {
				log.Printf("Tail error: %v", line.Err)
				continue
			}
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			window = append(window, text)
			if len(window) >= p.cfg.Follow.WindowSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}
