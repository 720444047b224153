package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/survey-snapshot/internal/columns"
)

var surveyRows = []string{
	"Timestamp,Respondent Email,Full Name,Overall satisfaction,Recommend score,Any other feedback,Batch",
	"2024-08-10 10:00:00,a@x.io,Asha,8,10,Great tutors,A",
	"2024-08-10 11:00:00,b@x.io,Ben,7,9,,B",
	"2024-08-11 09:30:00,c@x.io,Cai,9,8,Too fast,A",
	"2024-08-11 12:00:00,d@x.io,Dee,6,6,n/a,B",
	"2024-08-12 08:15:00,e@x.io,Eli,8,5,Loved it,A",
	"2024-08-12 14:45:00,f@x.io,Fay,,9,Good,C",
}

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "responses.csv")
	if err := os.WriteFile(p, []byte(strings.Join(surveyRows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestReadFileCSVInfersKinds(t *testing.T) {
	ds, err := ReadFile(writeCSV(t, t.TempDir()), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if ds.Rows() != 6 {
		t.Fatalf("rows = %d, want 6", ds.Rows())
	}
	want := map[string]columns.Kind{
		"Timestamp":            columns.KindText,
		"Respondent Email":     columns.KindText,
		"Overall satisfaction": columns.KindNumeric,
		"Recommend score":      columns.KindNumeric,
		"Any other feedback":   columns.KindText,
		"Batch":                columns.KindText,
	}
	for name, kind := range want {
		if got := ds.Kind(name); got != kind {
			t.Fatalf("kind(%s) = %s, want %s", name, got, kind)
		}
	}
	sat := ds.Floats("Overall satisfaction")
	if len(sat) != 5 {
		t.Fatalf("satisfaction values = %v", sat)
	}
	fb := ds.Texts("Any other feedback")
	if len(fb) != 4 || fb[0] != "Great tutors" || fb[3] != "Good" {
		t.Fatalf("feedback texts = %#v", fb)
	}
	if got := ds.Unique("Batch"); got != 3 {
		t.Fatalf("unique(Batch) = %d, want 3", got)
	}
	if ds.Floats("Batch") != nil {
		t.Fatalf("expected nil floats for text column")
	}
}

func TestReadFileXLSXStyledCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styled.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Overall rating", "Completion", "Submitted", "Opted in"},
		{1234.5, 0.125, 45513.5, true},
		{2000, 0.5, 45514.25, false},
		{3000, 1, nil, true},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	date, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	for _, s := range []struct {
		from, to string
		id       int
	}{{"A2", "A4", thousands}, {"B2", "B4", percent}, {"C2", "C4", date}} {
		if err := f.SetCellStyle("Sheet1", s.from, s.to, s.id); err != nil {
			t.Fatalf("set style: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	ds, err := ReadFile(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := map[string]columns.Kind{
		"Overall rating": columns.KindNumeric,
		"Completion":     columns.KindNumeric,
		"Submitted":      columns.KindDatetime,
		"Opted in":       columns.KindText,
	}
	for name, kind := range want {
		if got := ds.Kind(name); got != kind {
			t.Fatalf("kind(%s) = %s, want %s", name, got, kind)
		}
	}
	rating := ds.Floats("Overall rating")
	if len(rating) != 3 || rating[0] != 1234.5 || rating[2] != 3000 {
		t.Fatalf("rating = %v", rating)
	}
	if got := ds.Floats("Completion"); len(got) != 3 || got[0] != 0.125 {
		t.Fatalf("completion = %v", got)
	}
	if got := ds.Texts("Submitted"); len(got) != 2 {
		t.Fatalf("submitted = %v", got)
	}
}

func TestReadFileCSVDatesStayText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dates.csv")
	body := "Other date,Score\n2024-08-10,4\n2024-08-11,5\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	ds, err := ReadFile(p, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := ds.Kind("Other date"); got != columns.KindText {
		t.Fatalf("kind = %s, want text", got)
	}
	roles := columns.Classify(ds.Schema())
	if len(roles.Text) != 1 || roles.Text[0] != "Other date" {
		t.Fatalf("text roles = %v", roles.Text)
	}
}

func TestNewNormalizesHeaders(t *testing.T) {
	ds, err := New([]string{"Score", "Score", "", " Score "}, [][]string{{"1", "2", "x"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := ds.Columns()
	want := []string{"Score", "Score.1", "Unnamed: 2", "Score.2"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	if ds.Kind("Score.2") != columns.KindNumeric {
		t.Fatalf("all-missing column should be numeric, got %s", ds.Kind("Score.2"))
	}
}

func TestAnonymizeIsIdempotent(t *testing.T) {
	ds, err := ReadFile(writeCSV(t, t.TempDir()), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	once, dropped, err := Anonymize(ds)
	if err != nil {
		t.Fatalf("Anonymize: %v", err)
	}
	if strings.Join(dropped, "|") != "Respondent Email|Full Name" {
		t.Fatalf("dropped = %v", dropped)
	}
	twice, again, err := Anonymize(once)
	if err != nil {
		t.Fatalf("Anonymize twice: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second pass dropped %v", again)
	}
	if strings.Join(once.Columns(), "|") != strings.Join(twice.Columns(), "|") {
		t.Fatalf("columns changed: %v vs %v", once.Columns(), twice.Columns())
	}
	if once.Has("Respondent Email") {
		t.Fatalf("email column survived anonymization")
	}
	if once.Rows() != 6 {
		t.Fatalf("rows = %d", once.Rows())
	}
}

func TestDropMissingAndAllColumns(t *testing.T) {
	ds, err := New([]string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	same, err := ds.Drop("nope")
	if err != nil {
		t.Fatalf("Drop missing: %v", err)
	}
	if len(same.Columns()) != 2 {
		t.Fatalf("columns = %v", same.Columns())
	}
	none, err := ds.Drop("a", "b")
	if err != nil {
		t.Fatalf("Drop all: %v", err)
	}
	if len(none.Columns()) != 0 || none.Rows() != 2 {
		t.Fatalf("after drop all: cols=%v rows=%d", none.Columns(), none.Rows())
	}
	if len(ds.Columns()) != 2 {
		t.Fatalf("Drop mutated the source dataset")
	}
}

func TestLoadPrefersSpreadsheetThenCSV(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "survey.xlsx")
	csvPath := writeCSV(t, dir)

	ds, used, err := Load(xlsxPath, csvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("Load csv fallback: %v", err)
	}
	if used != csvPath || ds.Rows() != 6 {
		t.Fatalf("used = %s rows = %d", used, ds.Rows())
	}

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Overall rating", "NPS", "Comments"},
		{4, 10, "fine"},
		{5, 9, nil},
		{nil, 3, "slow"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(xlsxPath); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	ds, used, err = Load(xlsxPath, csvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if used != xlsxPath {
		t.Fatalf("used = %s, want spreadsheet", used)
	}
	if ds.Rows() != 3 || ds.Kind("Overall rating") != columns.KindNumeric || ds.Kind("Comments") != columns.KindText {
		t.Fatalf("rows=%d kinds=%v", ds.Rows(), ds.Schema())
	}
	if got := ds.Floats("Overall rating"); len(got) != 2 || got[1] != 5 {
		t.Fatalf("rating = %v", got)
	}

	if _, _, err := Load(xlsxPath, csvPath, ReadOptions{Sheet: "Missing"}); err == nil || !strings.Contains(err.Error(), "Available sheets: Sheet1") {
		t.Fatalf("expected sheet error, got %v", err)
	}
}

func TestLoadMissingInput(t *testing.T) {
	dir := t.TempDir()
	x, c := filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv")
	_, _, err := Load(x, c, ReadOptions{})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
	if !strings.Contains(err.Error(), x) || !strings.Contains(err.Error(), c) {
		t.Fatalf("error should name both paths: %v", err)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds, err := ReadFile(writeCSV(t, dir), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	anon, _, err := Anonymize(ds)
	if err != nil {
		t.Fatalf("Anonymize: %v", err)
	}
	out := filepath.Join(dir, "data", "cleaned_responses.csv")
	if err := WriteCSV(out, anon); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := ReadFile(out, ReadOptions{})
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if strings.Join(back.Columns(), "|") != strings.Join(anon.Columns(), "|") {
		t.Fatalf("columns = %v", back.Columns())
	}
	if back.Rows() != 6 {
		t.Fatalf("rows = %d", back.Rows())
	}
	sat := back.Floats("Overall satisfaction")
	var sum float64
	for _, v := range sat {
		sum += v
	}
	if len(sat) != 5 || math.Abs(sum-38) > 1e-9 {
		t.Fatalf("satisfaction after round trip = %v", sat)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	if _, err := ReadFile("notes.docx", ReadOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
}
