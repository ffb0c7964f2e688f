// Package demo drives the traffic decomposition pipeline behind the
// web demo: it resolves and ingests workbooks, aligns flows onto the
// five-minute grid, decomposes date windows into modes and recombines
// them under user weights.
//
// All pipeline work is serialized by one mutex. Aligned series are
// cached by source-file identity and decompositions by window content
// plus solver parameters; neither cache is ever evicted within a
// session. Reconstruction is recomputed on every request.
package demo
