// Package app is the composition root for tailview.
//
// Run loads configuration and user preferences, builds the controller
// (severity table, record assembler, tail watcher, pattern state), opens
// the initial source file when one was given on the command line, and
// hands everything to the UI, blocking until the user quits.
//
// Data flow at runtime:
//
//	tail.Watcher goroutine ──> tail.Queue ──> controller.Drain (tick)
//	    ──> record.Assembler ──> view.Project ──> edit script ──> ui
//
// The watcher goroutine is the only concurrent piece; everything after
// the queue runs on the UI event loop.
package app
