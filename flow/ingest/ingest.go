package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/traffic-vmd/flow/pcu"
	"github.com/cwbudde/traffic-vmd/flow/series"
)

var (
	// ErrMissingSourceFile indicates that no workbook exists for the
	// requested year.
	ErrMissingSourceFile = errors.New("ingest: source workbook not found")

	// ErrNoSiteColumn indicates that no sheet of the workbook carries a
	// site_id header, so no rows can be read at all.
	ErrNoSiteColumn = errors.New("ingest: no sheet carries a site_id column")
)

// DefaultPrefix is the file-name prefix of source workbooks when none is
// configured.
const DefaultPrefix = "traffic"

// Header names of the non-count columns. Count columns use the canonical
// category names from package pcu.
const (
	siteHeader = "site_id"
	dateHeader = "date"
	slotHeader = "slot"
)

// Record is one raw row of a source workbook.
type Record struct {
	SiteID string
	Date   time.Time // midnight of the calendar day, UTC
	Slot   int       // 1-based 5-minute slot within the day
	Counts pcu.Counts
}

// Timestamp returns the instant the record describes. Slot 1 maps onto
// midnight; a defaulted slot of 0 lands 5 minutes before the day, which the
// grid aligner absorbs like any other sample.
func (r Record) Timestamp() time.Time {
	return r.Date.Add(time.Duration(r.Slot-1) * series.Step)
}

// Sample converts the record to a timestamped PCU flow sample.
func (r Record) Sample() series.Sample {
	return series.Sample{Time: r.Timestamp(), Flow: r.Counts.Flow()}
}

// Locate resolves the workbook path <prefix>_<year>.xlsx inside dir and
// verifies it exists. A missing file yields ErrMissingSourceFile.
func Locate(dir, prefix string, year int) (string, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.xlsx", prefix, year))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingSourceFile, path)
		}
		return "", fmt.Errorf("ingest: stat %s: %w", path, err)
	}
	return path, nil
}

// ListYears returns the years for which a workbook <prefix>_<year>.xlsx
// exists in dir, ascending. A missing directory yields an empty list.
func ListYears(dir, prefix string) ([]int, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read dir %s: %w", dir, err)
	}

	var years []int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+"_") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix+"_"), ".xlsx"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// ReadFile reads every usable row from all sheets of the workbook at path,
// concatenated in sheet order. It returns ErrNoSiteColumn when no sheet has
// a site_id header.
func ReadFile(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		records  []Record
		anySheet bool
	)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("ingest: read sheet %q: %w", sheet, err)
		}
		sheetRecords, ok := readSheet(rows)
		if !ok {
			continue
		}
		anySheet = true
		records = append(records, sheetRecords...)
	}
	if !anySheet {
		return nil, fmt.Errorf("%w: %s", ErrNoSiteColumn, path)
	}
	return records, nil
}

// Samples converts records to timestamped flow samples, ready for
// series.Align.
func Samples(records []Record) []series.Sample {
	if len(records) == 0 {
		return nil
	}
	samples := make([]series.Sample, len(records))
	for i, r := range records {
		samples[i] = r.Sample()
	}
	return samples
}

// columns holds the discovered cell index of each known header, -1 when the
// header is absent.
type columns struct {
	site   int
	date   int
	slot   int
	counts [pcu.CategoryCount]int
}

// findColumns scans a header row for the known column names. Matching is
// case-insensitive and ignores surrounding whitespace. The second return is
// false when the row has no site_id header.
func findColumns(header []string) (columns, bool) {
	cols := columns{site: -1, date: -1, slot: -1}
	for i := range cols.counts {
		cols.counts[i] = -1
	}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch name {
		case siteHeader:
			cols.site = i
		case dateHeader:
			cols.date = i
		case slotHeader:
			cols.slot = i
		default:
			for _, c := range pcu.Categories() {
				if name == c.String() {
					cols.counts[c] = i
				}
			}
		}
	}
	return cols, cols.site >= 0
}

// readSheet parses one sheet's rows. The first row is the header; the second
// return is false when it carries no site_id column and the sheet must be
// skipped.
func readSheet(rows [][]string) ([]Record, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	cols, ok := findColumns(rows[0])
	if !ok {
		return nil, false
	}

	var records []Record
	for _, row := range rows[1:] {
		site := strings.TrimSpace(cell(row, cols.site))
		if site == "" || strings.EqualFold(site, siteHeader) {
			// Blank separator or a repeated header row.
			continue
		}
		date, err := parseDate(cell(row, cols.date))
		if err != nil {
			// A row without a readable date identifies no timestamp.
			continue
		}
		rec := Record{
			SiteID: site,
			Date:   date,
			Slot:   pcu.ParseSlot(cell(row, cols.slot)),
		}
		for _, c := range pcu.Categories() {
			rec.Counts[c] = pcu.ParseCount(cell(row, cols.counts[c]))
		}
		records = append(records, rec)
	}
	return records, true
}

// cell returns the value at idx, tolerating ragged rows and absent columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// dateLayouts lists the cell formats accepted for the date column. Cells
// styled as dates surface in the short m-d-yy form, plain text cells in ISO
// form.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1-2-06",
	"2006/01/02",
	"01/02/2006",
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("ingest: empty date cell")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("ingest: unrecognized date %q", raw)
}
