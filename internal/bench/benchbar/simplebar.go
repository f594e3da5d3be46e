// Package benchbar wraps the progress bar shown while a benchmark
// workload runs.
package benchbar

import "github.com/schollz/progressbar/v3"

// Bar tracks progress through a fixed number of workload items.
type Bar struct {
	pb *progressbar.ProgressBar
}

// NewBar creates a bar for total items, rendered with the given label.
func NewBar(label string, total int) *Bar {
	pb := progressbar.Default(int64(total), label)
	_ = pb.Set(0)
	return &Bar{pb: pb}
}

// Inc advances the bar by one item.
func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Finish completes and releases the bar.
func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
