package tui

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

func TestObserveResult(t *testing.T) {
	newBest := gamesCompletedTotal.WithLabelValues("true")
	notBest := gamesCompletedTotal.WithLabelValues("false")
	beforeBest := testutil.ToFloat64(newBest)
	beforeNot := testutil.ToFloat64(notBest)

	observeResult(memory.Result{Moves: 14, Seconds: 40, IsNewBest: true})
	observeResult(memory.Result{Moves: 20, Seconds: 55})

	if got := testutil.ToFloat64(newBest) - beforeBest; got != 1 {
		t.Errorf("new_best=true delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(notBest) - beforeNot; got != 1 {
		t.Errorf("new_best=false delta = %v, want 1", got)
	}
}
