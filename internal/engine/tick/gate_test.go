package tick

import (
	"errors"
	"testing"
)

func TestNewRejectsNegativeStep(t *testing.T) {
	g, err := New(-0.5)
	if !errors.Is(err, ErrNegativeStep) {
		t.Fatalf("New(-0.5) error = %v, want ErrNegativeStep", err)
	}
	if g != nil {
		t.Errorf("New(-0.5) returned a gate")
	}
}

func TestSetStep(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New(1): %v", err)
	}
	if err := g.SetStep(-1); !errors.Is(err, ErrNegativeStep) {
		t.Errorf("SetStep(-1) error = %v, want ErrNegativeStep", err)
	}
	if g.Step() != 1 {
		t.Errorf("Step() = %v after rejected SetStep, want 1", g.Step())
	}
	if err := g.SetStep(0); err != nil {
		t.Errorf("SetStep(0): %v", err)
	}
}

func TestTickSequence(t *testing.T) {
	tests := []struct {
		name  string
		step  float64
		times []float64
		want  []bool
	}{
		{
			name:  "unit step",
			step:  1,
			times: []float64{0, 0.5, 1.0, 1.01, 1.5, 2.02},
			want:  []bool{true, false, false, true, false, true},
		},
		{
			name:  "skips ticks inside the step",
			step:  1.0,
			times: []float64{0, 0.5, 1.1, 1.3, 2.2},
			want:  []bool{true, false, true, false, true},
		},
		{
			name:  "zero step fires on any advance",
			step:  0,
			times: []float64{3, 3, 3.001},
			want:  []bool{true, false, true},
		},
		{
			name:  "first call at arbitrary time",
			step:  2,
			times: []float64{100, 101, 102.5},
			want:  []bool{true, false, true},
		},
		{
			name:  "clock going backwards re-arms",
			step:  1,
			times: []float64{10, 5, 5.5, 6.5},
			want:  []bool{true, true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.step)
			if err != nil {
				t.Fatalf("New(%v): %v", tt.step, err)
			}
			for i, now := range tt.times {
				if got := g.Tick(now); got != tt.want[i] {
					t.Errorf("Tick(%v) = %v, want %v", now, got, tt.want[i])
				}
			}
		})
	}
}

func TestReset(t *testing.T) {
	g, _ := New(10)
	g.Tick(1)
	if g.Tick(2) {
		t.Fatal("Tick(2) fired inside the interval")
	}
	g.Reset()
	if !g.Tick(2) {
		t.Error("Tick after Reset did not fire")
	}
}
