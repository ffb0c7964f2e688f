// Package store persists aligned traffic series and decomposition
// results in a SQLite database.
//
// Entries are keyed by content digests so a restarted session reuses
// earlier work: a workbook is parsed again only when the file on disk
// changes, and the solver runs again only when the window content or
// the solver parameters change. The store never evicts.
package store
