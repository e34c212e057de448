// Package view is the incremental projection engine. Given the record
// list, a filter pattern, severity visibility flags, and a search
// pattern, it computes which records are visible, assigns each visible
// record a stable line range in the rendered output, and emits a minimal
// edit script (truncate the old suffix, append the new one) that any
// rendering surface can apply without re-rendering the whole document.
//
// Projection works on a suffix: the caller passes the index of the first
// record whose rendering may have changed (the dirty start index, as
// returned by the record assembler) and everything before it is left
// untouched. Appending to a ten-thousand-record log therefore costs the
// few records at the tail, not the whole history.
//
// The package also hosts the search navigator, a cyclic nearest-neighbor
// lookup over the (record, offset) ordered match list produced from the
// projection's highlight spans.
package view
