package survey

import (
	"strings"
	"testing"
	"time"

	perr "devsurvey/internal/platform/errors"
	"devsurvey/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func mustOpen(t *testing.T) *Table {
	t.Helper()
	tbl, err := Open("testdata/survey.csv")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	return tbl
}

func TestNew_SnapshotIdentity(t *testing.T) {
	loaded := time.Date(2024, 7, 1, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	testkit.Swap(t, &newID, func() string { return "snap-1" })
	testkit.Swap(t, &now, func() time.Time { return loaded })

	info := New(nil, "memory").Info()
	want := Info{ID: "snap-1", Source: "memory", LoadedAt: loaded.UTC()}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_Fixture(t *testing.T) {
	tbl := mustOpen(t)
	if tbl.Len() != 6 {
		t.Fatalf("rows = %d, want 6", tbl.Len())
	}
	info := tbl.Info()
	if info.ID == "" || info.Source != "testdata/survey.csv" || info.Rows != 6 {
		t.Fatalf("bad info: %+v", info)
	}

	r := tbl.Record(1)
	if r.DatabaseWant != "" {
		t.Fatalf("NA cell should load as missing, got %q", r.DatabaseWant)
	}
	if !r.YearsCode.Valid || r.YearsCode.Value != 20 {
		t.Fatalf("years = %+v, want 20", r.YearsCode)
	}
	if y := tbl.Record(3).YearsCode; y.Valid {
		t.Fatalf("non numeric years should be invalid, got %+v", y)
	}
	if tbl.Record(5).Employment != "" {
		t.Fatalf("NA employment should be missing")
	}
}

func TestOpen_MissingFileIsError(t *testing.T) {
	_, err := Open("testdata/does-not-exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestRead_SchemaMismatch(t *testing.T) {
	_, err := Read(strings.NewReader("Age,EdLevel\n25-34 years old,x\n"), "mem")
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	for _, col := range []string{"Employment", "MainBranch", "NEWCollabToolsWantToWorkWith"} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("error %q should name missing column %s", err, col)
		}
	}
}

func TestRead_EmptyAndMalformed(t *testing.T) {
	if _, err := Read(strings.NewReader(""), "empty"); err == nil {
		t.Fatal("empty input should fail")
	}
	header := strings.Join(columnNames(), ",")
	bad := header + "\n\"unterminated,quote\n"
	if _, err := Read(strings.NewReader(bad), "bad"); err == nil {
		t.Fatal("malformed csv should fail")
	}
}

func TestRead_BOMAndShortRows(t *testing.T) {
	header := "\ufeff" + strings.Join(columnNames(), ",")
	in := header + "\n25-34 years old,Bachelor,\"Employed, full-time\"\n,,\n"
	tbl, err := Read(strings.NewReader(in), "mem")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("rows = %d, want 1", tbl.Len())
	}
	if tbl.Info().Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", tbl.Info().Skipped)
	}
	r := tbl.Record(0)
	if r.Age != "25-34 years old" || r.Employment != "Employed, full-time" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.MainBranch != "" || r.YearsCode.Valid {
		t.Fatalf("short row should leave trailing fields missing: %+v", r)
	}
}

func TestVocabulary_Fixture(t *testing.T) {
	v := mustOpen(t).Vocabulary()

	wantAges := []string{
		"Under 18 years old",
		"18-24 years old",
		"25-34 years old",
		"35-44 years old",
		"45-54 years old",
	}
	if d := cmp.Diff(wantAges, v.Ages); d != "" {
		t.Fatalf("ages mismatch (-want +got):\n%s", d)
	}

	wantEmployment := []string{
		"Employed, full-time",
		"Employed, part-time",
		"Independent contractor, freelancer, or self-employed",
		"Student, full-time",
		"Student, part-time",
	}
	if d := cmp.Diff(wantEmployment, v.Employment); d != "" {
		t.Fatalf("employment mismatch (-want +got):\n%s", d)
	}

	// file order, not sorted
	wantStatus := []string{
		"I am a developer by profession",
		"I am learning to code",
		"I code primarily as a hobby",
		"I am not primarily a developer but I write code sometimes as part of my work/studies",
	}
	if d := cmp.Diff(wantStatus, v.DevStatus); d != "" {
		t.Fatalf("dev status mismatch (-want +got):\n%s", d)
	}

	for i := 1; i < len(v.EdLevels); i++ {
		if v.EdLevels[i-1] > v.EdLevels[i] {
			t.Fatalf("ed levels not sorted: %v", v.EdLevels)
		}
	}
	if v.Years != (Range{Min: 0, Max: 50}) {
		t.Fatalf("years = %+v", v.Years)
	}
}

func TestVocabulary_IsACopy(t *testing.T) {
	tbl := mustOpen(t)
	v := tbl.Vocabulary()
	v.Ages[0] = "mutated"
	if tbl.Vocabulary().Ages[0] == "mutated" {
		t.Fatal("vocabulary must not alias table state")
	}
}

func TestRelocateLast(t *testing.T) {
	got := relocateLast([]string{"18-24", "25-34", "Under 18"})
	want := []string{"Under 18", "18-24", "25-34"}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
	if got := relocateLast([]string{"only"}); len(got) != 1 || got[0] != "only" {
		t.Fatalf("single label should stay put: %v", got)
	}
	if got := relocateLast(nil); got != nil {
		t.Fatalf("nil in, nil out: %v", got)
	}
}

func TestNew_CopiesRecords(t *testing.T) {
	recs := []Record{{Age: "25-34 years old", Employment: "Employed, full-time"}}
	tbl := New(recs, "mem")
	recs[0].Age = "changed"
	if tbl.Record(0).Age != "25-34 years old" {
		t.Fatal("table must own its records")
	}
}

func columnNames() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = string(c)
	}
	return out
}
