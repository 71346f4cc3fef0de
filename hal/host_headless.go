//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	HAL   Options
}

// RunHeadless steps the app on a ticker without opening a window.
// It returns nil after cfg.Ticks steps (0 = run until ctx is done).
func RunHeadless(ctx context.Context, newApp func(HAL) App, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	cfg.HAL.Sound = false

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.HAL)
	a := newApp(h)
	defer a.Close()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if err := a.Step(); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				h.logger.Info("headless run finished", "ticks", tick)
				return nil
			}
		}
	}
}
