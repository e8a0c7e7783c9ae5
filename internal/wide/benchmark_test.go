package wide

import "testing"

// Benchmark F32x8 operations to verify SIMD auto-vectorization

func BenchmarkF32x8_Add(b *testing.B) {
	a := SplatF32(1.5)
	c := SplatF32(2.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Add(c)
	}
}

func BenchmarkF32x8_Sub(b *testing.B) {
	a := SplatF32(10.0)
	c := SplatF32(3.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Sub(c)
	}
}

func BenchmarkF32x8_Mul(b *testing.B) {
	a := SplatF32(2.5)
	c := SplatF32(4.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Mul(c)
	}
}

func BenchmarkF32x8_Div(b *testing.B) {
	a := SplatF32(10.0)
	c := SplatF32(2.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Div(c)
	}
}

func BenchmarkF32x8_Sqrt(b *testing.B) {
	a := SplatF32(9.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Sqrt()
	}
}

func BenchmarkF32x8_Clamp(b *testing.B) {
	a := SplatF32(1.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Clamp(0.0, 1.0)
	}
}

func BenchmarkF32x8_Lerp(b *testing.B) {
	a := SplatF32(0.0)
	c := SplatF32(10.0)
	t := SplatF32(0.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Lerp(c, t)
	}
}

func BenchmarkF32x8_Min(b *testing.B) {
	a := SplatF32(3.0)
	c := SplatF32(7.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Min(c)
	}
}

func BenchmarkF32x8_Max(b *testing.B) {
	a := SplatF32(3.0)
	c := SplatF32(7.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Max(c)
	}
}
