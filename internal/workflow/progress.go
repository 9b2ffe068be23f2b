package workflow

// Progress is one tick of a long-running operation. Completed increases
// monotonically up to Total regardless of the order individual items finish
// in; Label names the item currently (or most recently) worked on.
type Progress struct {
	Completed int
	Total     int
	Label     string
}

// ProgressFunc receives progress ticks. Implementations must be cheap; the
// controller calls them inline between backend requests.
type ProgressFunc func(Progress)
