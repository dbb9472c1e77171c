package controller

import "time"

// debouncer runs fire once wait has elapsed since the last Trigger. Each
// Trigger bumps a generation; fire receives it so a timer that expired just
// before a newer Trigger can be recognised as stale.
type debouncer struct {
	wait  time.Duration
	timer *time.Timer
	gen   uint64
	fire  func(gen uint64)
}

func (d *debouncer) Trigger() {
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

func (d *debouncer) Current(gen uint64) bool {
	return gen == d.gen
}

func (d *debouncer) Stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
