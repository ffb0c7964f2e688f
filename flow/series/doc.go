// Package series provides the uniform 5-minute traffic-flow time series and
// the grid alignment that produces it.
//
// Source records carry irregular, possibly duplicated timestamps. [Align]
// folds them onto a gap-free axis: duplicate timestamps are summed, the
// observed [min, max] range is spanned at exactly [Step] spacing, and
// unobserved slots hold 0. A [Series] is therefore fully described by its
// start time and its values; timestamps are derived, never stored.
//
// All times are understood as civil wall-clock times in UTC.
package series
