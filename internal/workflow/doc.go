// Package workflow implements the four-stage research wizard that drives the
// customer-notes backend: input -> review -> questions -> results.
//
// The Controller owns the single WorkflowState instance and is its only
// mutator. Forward stage movement is guarded by the data collected so far;
// backward movement is always allowed and a disallowed transition is a silent
// no-op rather than an error. The two network-heavy operations follow the
// same failure taxonomy: batch calls (fetch, transform) are fatal to the
// operation and leave the stage unchanged, while per-item calls (relevance,
// question answering) swallow individual failures, substitute sentinel
// outcomes, and continue, so every expected matrix cell is always populated.
//
// Both per-item passes run sequentially by default and can be spread across a
// bounded worker pool; either way output ordering matches input ordering and
// the progress callback observes a monotonically increasing completed count.
package workflow
