// Package session persists wizard state in SQLite so a research session
// survives between CLI invocations.
//
// The Store manages the database connection, schema initialization, and the
// sessions table. Each row serializes one workflow state: stage, fetched and
// filtered notes, selection, questions, and results. The newest row is the
// active session. A flock-based file lock beside the database serializes
// mutating commands across processes.
//
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package session
