package events

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"guidedawg/app/config"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var dateFormats = []string{"1/2/2006", "1/2/06", "2006-01-02"}

var clockFormats = []string{"15:04:05", "15:04", "3:04 PM"}

// Store is the immutable in-memory event table. It is loaded once at startup
// and never mutated afterwards, so unsynchronized concurrent reads are safe.
type Store struct {
	records    []Record
	categories map[string]struct{}
}

func New(di *do.Injector) (*Store, error) {
	cfg := do.MustInvoke[*config.Config](di)

	store, err := Load(cfg.Events.Path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded event dataset",
		"path", cfg.Events.Path,
		"records", len(store.records),
	)

	return store, nil
}

// Load reads the dataset CSV at path. Rows whose Date column cannot be
// parsed are dropped with a diagnostic; they never surface mid-conversation.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, oops.Errorf("failed to open events dataset: %w", err)
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		return nil, err
	}

	return NewFromRecords(records), nil
}

// NewFromRecords builds a store from already-parsed records. Record dates are
// expected to be normalized to midnight.
func NewFromRecords(records []Record) *Store {
	categories := make(map[string]struct{}, 4)
	for _, r := range records {
		categories[strings.ToLower(r.Category)] = struct{}{}
	}

	return &Store{
		records:    records,
		categories: categories,
	}
}

func parseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, oops.Errorf("failed to read dataset header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{"Event", "Category", "Date", "Time", "Location", "Price"} {
		if _, ok := col[required]; !ok {
			return nil, oops.Errorf("dataset is missing the %q column", required)
		}
	}

	var records []Record

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, oops.Errorf("failed to read dataset row: %w", err)
		}

		name := strings.TrimSpace(row[col["Event"]])
		rawDate := strings.TrimSpace(row[col["Date"]])

		date, err := ParseDate(rawDate)
		if err != nil {
			slog.Warn("Dropping event with unparseable date",
				"event", name,
				"date", rawDate,
			)
			continue
		}

		records = append(records, Record{
			Name:     name,
			Category: strings.TrimSpace(row[col["Category"]]),
			Location: strings.TrimSpace(row[col["Location"]]),
			Date:     date,
			Price:    parsePrice(strings.TrimSpace(row[col["Price"]])),
		}.withClock(strings.TrimSpace(row[col["Time"]])))
	}

	return records, nil
}

// ParseDate parses a dataset or tool-supplied date, normalized to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	for _, format := range dateFormats {
		t, err := time.Parse(format, value)
		if err != nil {
			continue
		}

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, oops.Errorf("unparseable date %q", value)
}

func parsePrice(value string) Price {
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return Price{Raw: value, Value: parsed, Numeric: true}
	}

	return Price{Raw: value}
}

func (r Record) withClock(value string) Record {
	r.ClockRaw = value

	for _, format := range clockFormats {
		if t, err := time.Parse(format, value); err == nil {
			r.Clock = t
			r.HasClock = true
			break
		}
	}

	return r
}

// Len reports the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}

// HasCategory reports whether any loaded record carries the category,
// letting callers distinguish an empty result from an unknown category.
func (s *Store) HasCategory(category string) bool {
	_, ok := s.categories[strings.ToLower(category)]
	return ok
}

func (s *Store) FindByDate(date time.Time) []Record {
	return s.FindByDateRange(date, date)
}

func (s *Store) FindByDateRange(start, end time.Time) []Record {
	start = midnight(start)
	end = midnight(end)

	matched := pie.Filter(s.records, func(r Record) bool {
		return !r.Date.Before(start) && !r.Date.After(end)
	})

	return sortByDateTime(matched)
}

func (s *Store) FindByCategory(category string, start, end time.Time) []Record {
	start = midnight(start)
	end = midnight(end)

	matched := pie.Filter(s.records, func(r Record) bool {
		return strings.EqualFold(r.Category, category) &&
			!r.Date.Before(start) && !r.Date.After(end)
	})

	return sortByDateTime(matched)
}

func (s *Store) FindByLocation(location string) []Record {
	matched := pie.Filter(s.records, func(r Record) bool {
		return strings.EqualFold(r.Location, location)
	})

	return sortByDateTime(matched)
}

// sortByDateTime orders records ascending by (date, clock). Records without a
// parseable clock sort after clocked records on the same date, keeping their
// load order (stable sort).
func sortByDateTime(records []Record) []Record {
	return pie.SortStableUsing(records, func(a, b Record) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}

		if a.HasClock != b.HasClock {
			return a.HasClock
		}

		if a.HasClock && b.HasClock {
			return a.Clock.Before(b.Clock)
		}

		return false
	})
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
