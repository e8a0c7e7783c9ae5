// Package wide provides SIMD-friendly wide types for batch coordinate math.
//
// This package implements F32x8, a fixed-size array of 8 float32 lanes
// designed to enable Go compiler auto-vectorization. By using a fixed-size
// array and simple loops, this type allows the compiler to generate SIMD
// instructions on supported architectures (SSE, AVX, NEON).
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//   - Provide benchmarks to verify SIMD performance gains
//
// # Usage Example
//
//	var xs, ys F32x8
//	// ... load 8 x/y coordinate pairs into xs, ys ...
//	rx := xs.Mul(SplatF32(m[0])).Add(ys.Mul(SplatF32(m[1]))).Add(SplatF32(m[2]))
package wide
