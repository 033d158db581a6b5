package numspiral

import (
	"image"
	"testing"

	"github.com/gogpu/numspiral/classify"
	"github.com/gogpu/numspiral/walk"
)

// BenchmarkDriverTick measures one 1000-index batch per path and classifier.
func BenchmarkDriverTick(b *testing.B) {
	for _, path := range walk.Policies() {
		for _, cls := range classify.Policies() {
			b.Run(string(path)+"/"+string(cls), func(b *testing.B) {
				cfg := DefaultConfig()
				cfg.Path = path
				cfg.Classifier = cls

				d, err := NewDriver(cfg)
				if err != nil {
					b.Fatal(err)
				}
				view := image.Pt(1024, 1024)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if !d.Tick(0, view) {
						b.StopTimer()
						d, _ = NewDriver(cfg)
						b.StartTimer()
					}
				}
			})
		}
	}
}

func BenchmarkPixmapSetPixel(b *testing.B) {
	pm := NewPixmap(1024, 1024)
	for i := 0; i < b.N; i++ {
		pm.SetPixel(i&1023, (i>>10)&1023, White)
	}
}

func BenchmarkPixmapClear(b *testing.B) {
	pm := NewPixmap(1024, 1024)
	for i := 0; i < b.N; i++ {
		pm.Clear(Black)
	}
}
