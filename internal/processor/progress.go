package processor

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// batchProgress tracks documents finished in a batch. The zero value is a
// disabled bar, so callers never need a nil check.
type batchProgress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

func (p *implProcessor) newBatchProgress(total int) *batchProgress {
	if p.progress == nil || total == 0 {
		return &batchProgress{}
	}

	container := mpb.New(
		mpb.WithOutput(p.progress),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	const description = "Transcribing decks"
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " done",
			),
		),
	)

	return &batchProgress{container: container, bar: bar}
}

// done marks one document as finished
func (b *batchProgress) done(elapsed time.Duration) {
	if b.bar != nil {
		b.bar.EwmaIncrement(elapsed)
	}
}

// wait flushes the bar. Bars that did not reach total (canceled batch) are
// aborted first so the container can shut down.
func (b *batchProgress) wait() {
	if b.container == nil {
		return
	}
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.container.Wait()
}

// IsTTY reports whether w is an interactive terminal
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
