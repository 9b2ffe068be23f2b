// Package notes defines the customer-note data model shared across the
// workflow, backend client, session store, and exporters.
//
// Types mirror the backend wire contract: CustomerNote carries the raw HTML
// note body plus the cleaned plain-text body the transform endpoint fills in,
// and QAResult aligns its answers positionally with the question list that
// produced them. A question's position is its identity, so nothing in this
// package ever reorders questions or answers.
//
// The package also owns the two pure derivations the CLI and HTML export
// share: question parsing from free text and per-question answer tallies.
package notes
