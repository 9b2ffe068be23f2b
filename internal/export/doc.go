// Package export renders question-answering results as CSV, TSV, and HTML.
// All writers are pure transforms of (questions, results); zero results
// produce zero output.
package export
