// Package ui implements the terminal user interface on Bubble Tea.
//
// The UI is a thin rendering surface over the controller: a viewport
// shows the rendered log buffer, text inputs drive the open, filter, and
// search prompts, and a periodic tick drains the tail queue through the
// controller and applies the resulting edit scripts.
//
// The log buffer (buffer.go) is the consumer side of the view package's
// render instruction API. It applies each edit script verbatim, erasing
// the stale suffix and appending the rebuilt one, and maps the
// projection's (record, span) highlight pairs onto physical lines at
// styling time. The buffer never reflows lines the script did not touch.
//
// Scroll pinning mirrors the usual tail-follow behavior: when the bottom
// of the view was visible before an edit, or follow mode is on, the
// viewport snaps back to the bottom afterwards.
package ui
