// Package ingest reads raw traffic-count workbooks into records.
//
// A source workbook holds one year of 5-minute count rows, possibly spread
// over several sheets. Columns are discovered by header name (site_id, date,
// slot and the six vehicle-category columns); sheets that carry no site_id
// header are skipped. Row filtering is deliberately forgiving: repeated
// header rows and rows without a sensor identifier are dropped, and
// malformed numeric cells degrade to zero counts instead of failing the
// whole file.
package ingest
