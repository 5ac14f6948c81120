package termination

import (
	"testing"
	"time"
)

func TestUnlimitedModel(t *testing.T) {
	model := NewUnlimitedModel()

	stats := NewSearchStats()
	stats.Iterations = 1000000
	stats.TreeSize = 1000000
	if model.ShouldStop(stats) {
		t.Error("unlimited model stopped a search")
	}
}

func TestIterationsLimitModel(t *testing.T) {
	model := NewIterationsLimitModel(100)

	stats := NewSearchStats()
	stats.Iterations = 99
	if model.ShouldStop(stats) {
		t.Error("stopped below the iteration limit")
	}
	stats.Iterations = 100
	if !model.ShouldStop(stats) {
		t.Error("did not stop at the iteration limit")
	}
}

func TestRuntimeLimitModel(t *testing.T) {
	model := NewRuntimeLimitModel(time.Minute)

	stats := NewSearchStats()
	if model.ShouldStop(stats) {
		t.Error("stopped a search that just started")
	}
	stats.StartedAt = time.Now().Add(-2 * time.Minute)
	if !model.ShouldStop(stats) {
		t.Error("did not stop a search past the runtime limit")
	}
}

func TestTreeSizeLimitModel(t *testing.T) {
	model := NewTreeSizeLimitModel(1000)

	stats := NewSearchStats()
	stats.TreeSize = 999
	if model.ShouldStop(stats) {
		t.Error("stopped below the tree size limit")
	}
	stats.TreeSize = 1000
	if !model.ShouldStop(stats) {
		t.Error("did not stop at the tree size limit")
	}
}

func TestCombinedModel(t *testing.T) {
	model := NewCombinedModel(
		NewIterationsLimitModel(100),
		NewTreeSizeLimitModel(1000),
	)

	stats := NewSearchStats()
	stats.Iterations = 50
	stats.TreeSize = 500
	if model.ShouldStop(stats) {
		t.Error("stopped a search inside every budget")
	}
	stats.TreeSize = 1000
	if !model.ShouldStop(stats) {
		t.Error("did not stop when one inner model triggered")
	}
}
