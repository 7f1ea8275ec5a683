package rand

import (
	"math"
	"testing"
)

func TestSameSeedSameStream(t *testing.T) {
	for _, gt := range []GeneratorType{Pcg, ChaCha8} {
		g1, g2 := New(gt, 42), New(gt, 42)
		for i := 0; i < 1000; i++ {
			x1, x2 := g1.Uniform(0, 1), g2.Uniform(0, 1)
			if x1 != x2 {
				t.Fatalf("%d) Generator type %d diverged: %g != %g", i, gt, x1, x2)
			}
		}
	}
}

func TestUniformRange(t *testing.T) {
	gen := New(Pcg, 7)
	for i := 0; i < 10000; i++ {
		x := gen.Uniform(-2, 3)
		if x < -2 || x >= 3 {
			t.Fatalf("%d) %g is outside [-2, 3)", i, x)
		}
	}
}

func TestTimeSeed(t *testing.T) {
	g1 := NewTimeSeed(Pcg)
	g2 := New(Pcg, g1.Seed())
	for i := 0; i < 100; i++ {
		x1, x2 := g1.Uniform(0, 1), g2.Uniform(0, 1)
		if x1 != x2 {
			t.Fatalf("%d) Reseeding with %d diverged: %g != %g",
				i, g1.Seed(), x1, x2)
		}
	}
}

func TestNormalMoments(t *testing.T) {
	gen := New(Pcg, 11)
	n := 200000
	sum, sqrSum := 0.0, 0.0
	for i := 0; i < n; i++ {
		x := gen.Normal(3, 2)
		sum += x
		sqrSum += x * x
	}
	mean := sum / float64(n)
	sd := math.Sqrt(sqrSum/float64(n) - mean*mean)

	if math.Abs(mean-3) > 0.05 {
		t.Errorf("Mean of Normal(3, 2) samples is %g", mean)
	}
	if math.Abs(sd-2) > 0.05 {
		t.Errorf("Standard deviation of Normal(3, 2) samples is %g", sd)
	}
}
