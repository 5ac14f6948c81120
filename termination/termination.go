package termination

import (
	"time"
)

//*******************************************
// termination model
//*******************************************

// Running counters of one search, checked against the configured
// budget once per frontier dequeue.
type SearchStats struct {
	// popped frontier entries so far
	Iterations int
	// settled tree entries so far
	TreeSize int
	// wall-clock start of the search
	StartedAt time.Time
}

func NewSearchStats() SearchStats {
	return SearchStats{
		StartedAt: time.Now(),
	}
}

// Search-budget policy. When ShouldStop returns true the search stops
// with whatever tree has been built so far and an explicit
// terminated-early signal.
//
// Implementations are constructed once and shared read-only between
// concurrent searches.
type ITerminationModel interface {
	ShouldStop(stats SearchStats) bool
}

//*******************************************
// unlimited model
//*******************************************

var _ ITerminationModel = &UnlimitedModel{}

// Default model, lets every search run to completion.
type UnlimitedModel struct{}

func NewUnlimitedModel() *UnlimitedModel {
	return &UnlimitedModel{}
}

func (self *UnlimitedModel) ShouldStop(stats SearchStats) bool {
	return false
}

//*******************************************
// iterations limit
//*******************************************

var _ ITerminationModel = &IterationsLimitModel{}

type IterationsLimitModel struct {
	max_iterations int
}

func NewIterationsLimitModel(max_iterations int) *IterationsLimitModel {
	return &IterationsLimitModel{
		max_iterations: max_iterations,
	}
}

func (self *IterationsLimitModel) ShouldStop(stats SearchStats) bool {
	return stats.Iterations >= self.max_iterations
}

//*******************************************
// runtime limit
//*******************************************

var _ ITerminationModel = &RuntimeLimitModel{}

type RuntimeLimitModel struct {
	max_runtime time.Duration
}

func NewRuntimeLimitModel(max_runtime time.Duration) *RuntimeLimitModel {
	return &RuntimeLimitModel{
		max_runtime: max_runtime,
	}
}

func (self *RuntimeLimitModel) ShouldStop(stats SearchStats) bool {
	return time.Since(stats.StartedAt) >= self.max_runtime
}

//*******************************************
// tree size limit
//*******************************************

var _ ITerminationModel = &TreeSizeLimitModel{}

type TreeSizeLimitModel struct {
	max_tree_size int
}

func NewTreeSizeLimitModel(max_tree_size int) *TreeSizeLimitModel {
	return &TreeSizeLimitModel{
		max_tree_size: max_tree_size,
	}
}

func (self *TreeSizeLimitModel) ShouldStop(stats SearchStats) bool {
	return stats.TreeSize >= self.max_tree_size
}

//*******************************************
// combined model
//*******************************************

var _ ITerminationModel = &CombinedModel{}

// Stops as soon as any inner model signals stop.
type CombinedModel struct {
	models []ITerminationModel
}

func NewCombinedModel(models ...ITerminationModel) *CombinedModel {
	return &CombinedModel{
		models: models,
	}
}

func (self *CombinedModel) ShouldStop(stats SearchStats) bool {
	for _, model := range self.models {
		if model.ShouldStop(stats) {
			return true
		}
	}
	return false
}
