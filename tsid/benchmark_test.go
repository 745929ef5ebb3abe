package tsid

import (
	"testing"
)

// ========================================
// TSID Benchmark
// ========================================

func BenchmarkGenerate(b *testing.B) {
	gen, _ := New(1, DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Generate()
	}
}

func BenchmarkGenerate_Parallel(b *testing.B) {
	gen, _ := New(1, DefaultConfig())
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			gen.Generate()
		}
	})
}

func BenchmarkExtract(b *testing.B) {
	gen, _ := New(1, DefaultConfig())
	id := gen.Generate()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Extract(id)
	}
}

// ========================================
// UUID Benchmark
// ========================================

func BenchmarkUUIDV7(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewUUIDV7()
	}
}

func BenchmarkUUIDV4(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewUUIDV4()
	}
}
