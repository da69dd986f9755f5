package vegas

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"govegas/domain/core"
	"govegas/domain/montecarlo"
	"govegas/internal/testkit"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// TestConstantIntegrand is the variance-reduction correctness check: for
// f(x) = c every stratified draw has weight exactly compensating the bin
// widths, so the mean is c times the volume and the error collapses.
func TestConstantIntegrand(t *testing.T) {
	s := New(Options{})
	ctx := context.Background()

	tests := []struct {
		name string
		dom  montecarlo.Domain
		dim  int
		c    float64
	}{
		{"unit cube", montecarlo.NewUnitCube(3), 3, 2.5},
		{"scaled box", montecarlo.Domain{Lower: []float64{-1, 0}, Upper: []float64{1, 4}}, 2, 0.5},
		{"one dimension", montecarlo.Domain{Lower: []float64{2}, Upper: []float64{5}}, 1, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := s.Integrate(ctx, testkit.Constant(tt.c), tt.dom, tt.dim, montecarlo.Params{}, 50000, newRand(1))
			if err != nil {
				t.Fatalf("Integrate() error: %v", err)
			}
			want := tt.c * tt.dom.Volume()
			if math.Abs(est.Mean-want) > 1e-9 {
				t.Errorf("Mean = %g, want %g", est.Mean, want)
			}
			if est.Err > 1e-9 {
				t.Errorf("Err = %g, want ~0 for constant integrand", est.Err)
			}
		})
	}
}

func TestPolyAccuracy(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(3)
	par := montecarlo.Params{P: 0.1, Q: 0.1}

	est, err := s.Integrate(context.Background(), testkit.Poly, dom, 3, par, 100000, newRand(7))
	if err != nil {
		t.Fatalf("Integrate() error: %v", err)
	}

	want := testkit.PolyExpected(dom, par) // 1/4
	if math.Abs(est.Mean-want) > 0.01 {
		t.Errorf("Mean = %g, want %g within 0.01", est.Mean, want)
	}
	if est.Err <= 0 || est.Err > 0.01 {
		t.Errorf("Err = %g, want small positive", est.Err)
	}
	if est.Samples != 100000 {
		t.Errorf("Samples = %d, want 100000", est.Samples)
	}
}

func TestOneDimensionalQuadratic(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.Domain{Lower: []float64{0}, Upper: []float64{2}}
	f := func(x []float64, par montecarlo.Params) float64 { return x[0] * x[0] }

	est, err := s.Integrate(context.Background(), f, dom, 1, montecarlo.Params{}, 50000, newRand(3))
	if err != nil {
		t.Fatalf("Integrate() error: %v", err)
	}
	if want := 8.0 / 3.0; math.Abs(est.Mean-want) > 0.05 {
		t.Errorf("Mean = %g, want %g within 0.05", est.Mean, want)
	}
}

// TestErrorShrinksWithBudget checks the 1/sqrt(n) behavior: a 16x budget
// should not report a larger standard error.
func TestErrorShrinksWithBudget(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(3)
	par := montecarlo.Params{P: 0.1, Q: 0.1}

	small, err := s.Integrate(context.Background(), testkit.Poly, dom, 3, par, 10000, newRand(11))
	if err != nil {
		t.Fatalf("small run: %v", err)
	}
	large, err := s.Integrate(context.Background(), testkit.Poly, dom, 3, par, 160000, newRand(11))
	if err != nil {
		t.Fatalf("large run: %v", err)
	}
	if large.Err > small.Err {
		t.Errorf("error grew with budget: %g (n=10000) -> %g (n=160000)", small.Err, large.Err)
	}
}

// TestDeterministicGivenSeed verifies bit-identical results for a fixed
// random stream.
func TestDeterministicGivenSeed(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(2)
	par := montecarlo.Params{P: 0.3, Q: 0.7}

	a, err := s.Integrate(context.Background(), testkit.Poly, dom, 2, par, 20000, newRand(99))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := s.Integrate(context.Background(), testkit.Poly, dom, 2, par, 20000, newRand(99))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different results: %+v vs %+v", a, b)
	}
}

func TestInvalidDomainBeforeSampling(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.Domain{Lower: []float64{0, 1, 0}, Upper: []float64{1, 0, 1}}

	calls := 0
	counting := func(x []float64, par montecarlo.Params) float64 {
		calls++
		return 1
	}

	_, err := s.Integrate(context.Background(), counting, dom, 3, montecarlo.Params{}, 50000, newRand(1))
	if !errors.Is(err, core.ErrInvalidDomain) {
		t.Fatalf("Integrate() = %v, want ErrInvalidDomain", err)
	}
	if calls != 0 {
		t.Errorf("integrand was evaluated %d times before validation failed", calls)
	}
}

func TestDimensionMismatch(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(3)

	_, err := s.Integrate(context.Background(), testkit.Constant(1), dom, 2, montecarlo.Params{}, 50000, newRand(1))
	if !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("Integrate() = %v, want ErrInvalidDimension", err)
	}
}

func TestBudgetTooSmall(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(3)

	_, err := s.Integrate(context.Background(), testkit.Constant(1), dom, 3, montecarlo.Params{}, s.MinCalls(3)-1, newRand(1))
	if !errors.Is(err, core.ErrBudgetTooSmall) {
		t.Fatalf("Integrate() = %v, want ErrBudgetTooSmall", err)
	}
}

func TestNonFiniteIntegrand(t *testing.T) {
	s := New(Options{})
	dom := montecarlo.NewUnitCube(1)
	f := func(x []float64, par montecarlo.Params) float64 { return math.NaN() }

	_, err := s.Integrate(context.Background(), f, dom, 1, montecarlo.Params{}, 50000, newRand(1))
	if err == nil {
		t.Fatal("Integrate() accepted a NaN-producing integrand")
	}
}

func TestCancelledContext(t *testing.T) {
	s := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Integrate(ctx, testkit.Constant(1), montecarlo.NewUnitCube(1), 1, montecarlo.Params{}, 50000, newRand(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Integrate() = %v, want context.Canceled", err)
	}
}
