package survey

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	perr "devsurvey/internal/platform/errors"
	"devsurvey/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Table is the loaded survey. It is immutable after Read returns and safe to share
// across goroutines without locking
type Table struct {
	records    []Record
	employment [][]string // Employment exploded once at load, indexed like records
	vocab      Vocabulary
	info       Info
}

// Info describes one load of the survey file
type Info struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// snapshot identity, swapped in tests
var (
	newID = uuid.NewString
	now   = time.Now
)

// Open reads the survey file at path
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open survey file %s", path)
	}
	defer func() { _ = f.Close() }()
	return Read(f, path)
}

// Read parses a survey CSV. The header must carry every column in Columns; anything else
// in the file is ignored. Any read error aborts the load, there is no partial table
func Read(r io.Reader, source string) (*Table, error) {
	log := logger.Named("survey")
	started := time.Now()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.Newf(perr.ErrorCodeValidation, "survey file %s is empty", source)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "read survey header from %s", source)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var recs []Record
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "parse survey file %s", source)
		}
		if blankRow(row) {
			skipped++
			continue
		}
		recs = append(recs, parseRow(row, idx))
	}

	t := build(recs, source)
	t.info.Skipped = skipped

	log.Info().
		Str("source", source).
		Str("snapshot", t.info.ID).
		Int("rows", t.info.Rows).
		Int("skipped", t.info.Skipped).
		Int("ages", len(t.vocab.Ages)).
		Int("ed_levels", len(t.vocab.EdLevels)).
		Int("employment", len(t.vocab.Employment)).
		Int("dev_status", len(t.vocab.DevStatus)).
		Dur("elapsed", time.Since(started)).
		Msg("survey loaded")

	return t, nil
}

// New builds a Table from records already in memory. The slice is copied
func New(records []Record, source string) *Table {
	return build(append([]Record(nil), records...), source)
}

func build(recs []Record, source string) *Table {
	t := &Table{records: recs, employment: make([][]string, len(recs))}
	for i := range recs {
		t.employment[i] = Split(recs[i].Employment)
	}
	t.vocab = deriveVocabulary(t)
	t.info = Info{
		ID:       newID(),
		Source:   source,
		Rows:     len(recs),
		LoadedAt: now().UTC(),
	}
	return t
}

// parseRow builds a Record from one csv row. Short rows leave trailing fields missing
func parseRow(row []string, idx map[Column]int) Record {
	var rec Record
	for _, c := range Columns {
		i := idx[c]
		if i >= len(row) {
			continue
		}
		v := cleanCell(row[i])
		if c == ColYearsCode {
			rec.YearsCode = parseYears(v)
			continue
		}
		rec.set(c, v)
	}
	return rec
}

// cleanCell trims, NFC normalizes and maps missing markers to ""
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	if isMissing(s) {
		return ""
	}
	return s
}

// parseYears reads YearsCode. Labels like "Less than 1 year" are not numbers and leave the
// value invalid, which the range filter treats as no match
func parseYears(s string) Years {
	if s == "" {
		return Years{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Years{}
	}
	return Years{Value: f, Valid: true}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of records
func (t *Table) Len() int { return len(t.records) }

// Info returns load metadata
func (t *Table) Info() Info { return t.info }

// Vocabulary returns the filter options derived at load. The slices are copies
func (t *Table) Vocabulary() Vocabulary { return t.vocab.clone() }

// Record returns a copy of the i-th record
func (t *Table) Record(i int) Record { return t.records[i] }

// All returns a View over every record, unfiltered
func (t *Table) All() View {
	rows := make([]int, len(t.records))
	for i := range rows {
		rows[i] = i
	}
	return View{t: t, rows: rows}
}
