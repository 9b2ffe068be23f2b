// Package main hosts the notesift CLI entrypoint and command graph.
//
// The Cobra-based command tree walks a research session through its four
// stages: fetch customer notes, review the relevant subset, ask yes/no
// questions against the selection, and export the results. It centralizes
// configuration resolution, session persistence, and logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
