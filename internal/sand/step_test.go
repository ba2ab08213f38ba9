package sand

import (
	"math/rand/v2"
	"slices"
	"testing"

	"falling-sand/internal/core"

	"github.com/google/go-cmp/cmp"
)

func gridWith(rows, cols int, particles ...[2]int) *core.Grid {
	g := core.NewGrid(rows, cols, 1)
	for _, p := range particles {
		g.Set(p[0], p[1], Sand)
	}
	return g
}

func stepOnce(src *core.Grid, coin Coin) *core.Grid {
	dst := core.NewGrid(src.Rows, src.Cols, src.CellSize)
	Step(src, dst, coin, 0)
	return dst
}

func particlesOf(g *core.Grid) [][2]int { return Collect(g).ActiveParticles }

func TestBottomRowSettles(t *testing.T) {
	const rows, cols = 4, 6
	for c := 0; c < cols; c++ {
		src := gridWith(rows, cols, [2]int{rows - 1, c})
		got := particlesOf(stepOnce(src, AlwaysLeft))
		if diff := cmp.Diff([][2]int{{rows - 1, c}}, got); diff != "" {
			t.Fatalf("column %d bottom particle moved (-want +got):\n%s", c, diff)
		}
	}
}

func TestFreeFallReachesBottom(t *testing.T) {
	const rows, cols, startRow = 7, 3, 1
	sim := NewWithGrid(DefaultConfig(), gridWith(rows, cols, [2]int{startRow, 1}), AlwaysLeft)

	for i := 1; i <= rows-1-startRow; i++ {
		sim.Step()
		want := [][2]int{{startRow + i, 1}}
		if diff := cmp.Diff(want, sim.Frame().ActiveParticles); diff != "" {
			t.Fatalf("after %d steps (-want +got):\n%s", i, diff)
		}
	}
	sim.Step()
	if diff := cmp.Diff([][2]int{{rows - 1, 1}}, sim.Frame().ActiveParticles); diff != "" {
		t.Fatalf("particle left the bottom row (-want +got):\n%s", diff)
	}
}

func TestWallClamping(t *testing.T) {
	cases := []struct {
		name string
		src  [][2]int
		want [][2]int
	}{
		{
			name: "left wall blocked below-right",
			src:  [][2]int{{0, 0}, {1, 0}, {1, 1}},
			want: [][2]int{{0, 0}, {1, 0}, {1, 1}},
		},
		{
			name: "right wall blocked below-left",
			src:  [][2]int{{0, 2}, {1, 1}, {1, 2}},
			want: [][2]int{{0, 2}, {1, 1}, {1, 2}},
		},
		{
			name: "left wall slides right",
			src:  [][2]int{{0, 0}, {1, 0}},
			want: [][2]int{{1, 0}, {1, 1}},
		},
		{
			name: "right wall slides left",
			src:  [][2]int{{0, 2}, {1, 2}},
			want: [][2]int{{1, 1}, {1, 2}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, coin := range []Coin{AlwaysLeft, AlwaysRight} {
				got := particlesOf(stepOnce(gridWith(2, 3, tc.src...), coin))
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Fatalf("(-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestSingleColumnSettlesOnStack(t *testing.T) {
	got := particlesOf(stepOnce(gridWith(3, 1, [2]int{0, 0}, [2]int{1, 0}), AlwaysLeft))
	want := [][2]int{{0, 0}, {2, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDiagonalSlideOutcomes(t *testing.T) {
	src := gridWith(2, 3, [2]int{0, 1}, [2]int{1, 1})
	left := [][2]int{{1, 0}, {1, 1}}
	right := [][2]int{{1, 1}, {1, 2}}

	if diff := cmp.Diff(left, particlesOf(stepOnce(src, AlwaysLeft))); diff != "" {
		t.Fatalf("left coin (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(right, particlesOf(stepOnce(src, AlwaysRight))); diff != "" {
		t.Fatalf("right coin (-want +got):\n%s", diff)
	}

	seenLeft, seenRight := 0, 0
	coin := NewRandomCoin(7)
	for i := 0; i < 200; i++ {
		got := particlesOf(stepOnce(src, coin))
		switch {
		case cmp.Equal(got, left):
			seenLeft++
		case cmp.Equal(got, right):
			seenRight++
		default:
			t.Fatalf("iteration %d: unexpected outcome %v", i, got)
		}
	}
	if seenLeft == 0 || seenRight == 0 {
		t.Fatalf("expected both slide directions, got left=%d right=%d", seenLeft, seenRight)
	}
}

func TestOnlyFreeDiagonalIsTaken(t *testing.T) {
	// Below-left occupied, below-right free.
	got := particlesOf(stepOnce(gridWith(2, 3, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}), AlwaysLeft))
	want := [][2]int{{1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("right-only slide (-want +got):\n%s", diff)
	}

	// Below-right occupied, below-left free.
	got = particlesOf(stepOnce(gridWith(2, 3, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}), AlwaysRight))
	want = [][2]int{{1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("left-only slide (-want +got):\n%s", diff)
	}

	// Both occupied: settle.
	got = particlesOf(stepOnce(gridWith(2, 3, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}), AlwaysLeft))
	want = [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocked particle (-want +got):\n%s", diff)
	}
}

func TestReservedValueBelowBlocksFall(t *testing.T) {
	src := gridWith(2, 1, [2]int{0, 0})
	src.Set(1, 0, water)
	dst := stepOnce(src, AlwaysLeft)
	if dst.Get(0, 0) != Sand {
		t.Fatalf("sand above a reserved cell should settle, got %d", dst.Get(0, 0))
	}
	if dst.Get(1, 0) != Empty {
		t.Fatalf("reserved cells are not carried forward, got %d", dst.Get(1, 0))
	}
}

func TestWriteCollisionLastWriteWins(t *testing.T) {
	// (0,0) slides right into (1,1) while (0,1) falls straight into it.
	src := gridWith(2, 3, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})
	dst := stepOnce(src, AlwaysLeft)

	want := [][2]int{{1, 0}, {1, 1}}
	if diff := cmp.Diff(want, particlesOf(dst)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if src.Count(Sand) != 3 || dst.Count(Sand) != 2 {
		t.Fatalf("expected collision to drop one particle: src=%d dst=%d", src.Count(Sand), dst.Count(Sand))
	}
}

func TestStepNeverCreatesParticles(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 0))
	g := core.NewGrid(20, 20, 1)
	for i := range g.Cells() {
		if rng.IntN(3) == 0 {
			g.Cells()[i] = Sand
		}
	}
	sim := NewWithGrid(DefaultConfig(), g, NewRandomCoin(3))
	prev := sim.Current().Count(Sand)
	for i := 0; i < 60; i++ {
		sim.Step()
		n := sim.Current().Count(Sand)
		if n > prev {
			t.Fatalf("step %d increased particles from %d to %d", i, prev, n)
		}
		for _, v := range sim.Current().Cells() {
			if v != Empty && v != Sand {
				t.Fatalf("step %d produced cell value %d", i, v)
			}
		}
		prev = n
	}
}

func TestSettledBottomRowIsFixedPoint(t *testing.T) {
	src := gridWith(4, 5, [2]int{3, 0}, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})
	dst := stepOnce(src, NewRandomCoin(1))
	if !slices.Equal(src.Cells(), dst.Cells()) {
		t.Fatalf("settled grid changed:\nsrc=%v\ndst=%v", src.Cells(), dst.Cells())
	}
}

func TestStepDoesNotMutateSource(t *testing.T) {
	src := gridWith(3, 3, [2]int{0, 1}, [2]int{1, 1}, [2]int{0, 0})
	before := slices.Clone(src.Cells())
	stepOnce(src, AlwaysLeft)
	if !slices.Equal(before, src.Cells()) {
		t.Fatal("Step modified its source grid")
	}
}

func TestStepPanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched grids")
		}
	}()
	Step(core.NewGrid(3, 3, 1), core.NewGrid(3, 4, 1), AlwaysLeft, 0)
}

func TestScenarioSingleParticleFiveByFive(t *testing.T) {
	sim := NewWithGrid(DefaultConfig(), gridWith(5, 5, [2]int{0, 2}), NewRandomCoin(5))
	for i := 0; i < 4; i++ {
		sim.Step()
	}
	if diff := cmp.Diff([][2]int{{4, 2}}, sim.Frame().ActiveParticles); diff != "" {
		t.Fatalf("after 4 steps (-want +got):\n%s", diff)
	}
	sim.Step()
	if diff := cmp.Diff([][2]int{{4, 2}}, sim.Frame().ActiveParticles); diff != "" {
		t.Fatalf("after 5 steps (-want +got):\n%s", diff)
	}
}

func TestScenarioStackedPairThreeByThree(t *testing.T) {
	// (0,1) sees (1,1) occupied in the source and both diagonals free, so it
	// slides; (1,1) falls to the bottom row.
	cases := []struct {
		coin Coin
		want [][2]int
	}{
		{AlwaysLeft, [][2]int{{1, 0}, {2, 1}}},
		{AlwaysRight, [][2]int{{1, 2}, {2, 1}}},
	}
	for _, tc := range cases {
		got := particlesOf(stepOnce(gridWith(3, 3, [2]int{0, 1}, [2]int{1, 1}), tc.coin))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	}
}
