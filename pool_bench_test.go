//go:build bench

package specmark

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 4, 8} {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkConverterPool_Convert measures parallel annotation of a
// document with many headings.
func BenchmarkConverterPool_Convert(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, `<section id="s%d"><h2>Heading %d</h2><p>Body text.</p></section>`, i, i)
	}
	input := Input{HTML: sb.String(), Permalinks: &Permalinks{Include: true}}

	for _, size := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			pool := NewConverterPool(size)
			defer pool.Close()

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			jobs := make(chan struct{})
			for w := 0; w < size; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range jobs {
						conv, err := pool.Acquire()
						if err != nil {
							b.Error(err)
							return
						}
						if _, err := conv.Convert(context.Background(), input); err != nil {
							b.Error(err)
						}
						pool.Release(conv)
					}
				}()
			}
			for i := 0; i < b.N; i++ {
				jobs <- struct{}{}
			}
			close(jobs)
			wg.Wait()
		})
	}
}
