package optim

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	search := NewGridSearch(
		[]string{"a", "b"},
		[][]float64{
			{-1, 0, 1, 2},
			{0, 1, 2},
		},
	)

	bowl := func(_ context.Context, p map[string]float64) (float64, error) {
		da, db := p["a"]-1, p["b"]-2
		return da*da + db*db, nil
	}

	params, score, err := search.Search(context.Background(), bowl)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if params["a"] != 1 || params["b"] != 2 {
		t.Errorf("best params = %v, want a=1 b=2", params)
	}
	if score != 0 {
		t.Errorf("best score = %v, want 0", score)
	}
}

func TestGridSearchSkipsFailedCombinations(t *testing.T) {
	search := NewGridSearch(
		[]string{"a", "b"},
		[][]float64{
			{-1, 0, 1, 2},
			{0, 1, 2},
		},
	)

	// The true minimum at a=1 always errors, so the search should land
	// on the nearest surviving grid point.
	eval := func(_ context.Context, p map[string]float64) (float64, error) {
		if p["a"] == 1 {
			return 0, errors.New("unstable")
		}
		da, db := p["a"]-1, p["b"]-2
		return da*da + db*db, nil
	}

	params, score, err := search.Search(context.Background(), eval)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if score != 1 {
		t.Errorf("best score = %v, want 1", score)
	}
	if params["a"] != 0 || params["b"] != 2 {
		t.Errorf("best params = %v, want a=0 b=2", params)
	}
}

func TestGridSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	search := NewGridSearch([]string{"a"}, [][]float64{{1, 2, 3}})
	params, score, err := search.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
		t.Fatal("objective ran after cancellation")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if params != nil {
		t.Errorf("params = %v, want nil", params)
	}
	if !math.IsInf(score, 1) {
		t.Errorf("score = %v, want +Inf", score)
	}
}
