package crfctx

import (
	"math"
	"testing"
)

// benchContext builds a Context of size (T, L) with pseudo-random (but
// deterministic) unexponentiated state/transition scores, runs ExpState and
// ExpTransition once, and returns it ready for AlphaScore/BetaScore/Viterbi.
func benchContext(b *testing.B, T, L int) *Context {
	b.Helper()
	c, err := NewContext(FlagMarginals|FlagViterbi, L, T)
	if err != nil {
		b.Fatalf("NewContext failed: %v", err)
	}
	if err := c.Resize(T); err != nil {
		b.Fatalf("Resize failed: %v", err)
	}

	for t := 0; t < T; t++ {
		row := c.StateRow(t)
		for l := 0; l < L; l++ {
			row[l] = math.Sin(float64(t*L + l)) // cheap, deterministic, non-degenerate scores
		}
	}
	for i := 0; i < L; i++ {
		row := c.TransRow(i)
		for j := 0; j < L; j++ {
			row[j] = math.Cos(float64(i*L + j))
		}
	}
	if err := c.ExpState(); err != nil {
		b.Fatalf("ExpState failed: %v", err)
	}
	if err := c.ExpTransition(); err != nil {
		b.Fatalf("ExpTransition failed: %v", err)
	}
	return c
}

// BenchmarkAlphaScore_Small benchmarks the forward pass on a short sequence
// with few labels, representative of a single named-entity tagging sentence.
func BenchmarkAlphaScore_Small(b *testing.B) {
	c := benchContext(b, 20, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.AlphaScore(); err != nil {
			b.Fatalf("AlphaScore failed: %v", err)
		}
	}
}

// BenchmarkAlphaScore_Large benchmarks the forward pass on a long sequence
// with a larger label set, representative of chunking/POS tagging at
// document scale.
func BenchmarkAlphaScore_Large(b *testing.B) {
	c := benchContext(b, 200, 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.AlphaScore(); err != nil {
			b.Fatalf("AlphaScore failed: %v", err)
		}
	}
}

// BenchmarkBetaScore_Small benchmarks the backward pass; requires AlphaScore
// to have run first since BetaScore reuses its scale vector.
func BenchmarkBetaScore_Small(b *testing.B) {
	c := benchContext(b, 20, 5)
	if err := c.AlphaScore(); err != nil {
		b.Fatalf("AlphaScore failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.BetaScore(); err != nil {
			b.Fatalf("BetaScore failed: %v", err)
		}
	}
}

// BenchmarkBetaScore_Large is BenchmarkBetaScore_Small's (T,L) counterpart
// to BenchmarkAlphaScore_Large.
func BenchmarkBetaScore_Large(b *testing.B) {
	c := benchContext(b, 200, 20)
	if err := c.AlphaScore(); err != nil {
		b.Fatalf("AlphaScore failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.BetaScore(); err != nil {
			b.Fatalf("BetaScore failed: %v", err)
		}
	}
}

// BenchmarkViterbi_Small benchmarks the decoding pass, which runs
// independently of AlphaScore/BetaScore (it reuses the alpha buffer as its
// own dp scratch table).
func BenchmarkViterbi_Small(b *testing.B) {
	c := benchContext(b, 20, 5)
	out := make([]int, 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Viterbi(out); err != nil {
			b.Fatalf("Viterbi failed: %v", err)
		}
	}
}

// BenchmarkViterbi_Large is BenchmarkViterbi_Small's (T,L) counterpart to
// BenchmarkAlphaScore_Large.
func BenchmarkViterbi_Large(b *testing.B) {
	c := benchContext(b, 200, 20)
	out := make([]int, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Viterbi(out); err != nil {
			b.Fatalf("Viterbi failed: %v", err)
		}
	}
}
