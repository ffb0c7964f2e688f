package testutil

import (
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a workbook fixture.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// CountHeader is the canonical header row of a traffic count workbook.
var CountHeader = []interface{}{
	"site_id", "date", "slot",
	"passenger_car", "bus", "light_truck", "heavy_truck", "trailer", "motorcycle",
}

// WriteWorkbook writes an .xlsx fixture with the given sheets at path.
func WriteWorkbook(t *testing.T, path string, sheets ...Sheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sh.Name); err != nil {
				t.Fatalf("add sheet %q: %v", sh.Name, err)
			}
		}
		for r, row := range sh.Rows {
			if err := f.SetSheetRow(sh.Name, "A"+strconv.Itoa(r+1), &row); err != nil {
				t.Fatalf("write row %d: %v", r+1, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
