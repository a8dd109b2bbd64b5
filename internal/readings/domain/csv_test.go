package readings

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date,Type,Reading,Reading Source
17 Dec 2024,anytime," 66,444 ",bill
17 Dec 2024,Controlled Load," 79,636 ",bill
17 Dec 2024,solar," 70,660 ",bill
15 Jan 2025,anytime,66930,
`

func TestParseCSV_CleansAndSorts(t *testing.T) {
	set, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(set) != 4 {
		t.Fatalf("expected 4 readings, got %d", len(set))
	}

	first := set[0]
	if !first.Date.Equal(time.Date(2024, time.December, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first date: %v", first.Date)
	}
	if first.Type != TypeAnytime {
		t.Fatalf("unexpected first type: %s", first.Type)
	}
	if first.Value != 66444 {
		t.Fatalf("thousands separator not stripped: %v", first.Value)
	}
	if first.Source != SourceBill {
		t.Fatalf("unexpected source: %s", first.Source)
	}

	if set[1].Type != TypeControlledLoad {
		t.Fatalf("type not normalized: %s", set[1].Type)
	}

	last := set[3]
	if !last.Date.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("not sorted ascending: %v", last.Date)
	}
	if last.Source != SourceManual {
		t.Fatalf("empty source should default to manual, got %s", last.Source)
	}
}

func TestParseCSV_AcceptsSlashDates(t *testing.T) {
	input := "Date,Type,Reading,Reading Source\n17/12/2024,anytime,1000,bill\n"
	set, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !set[0].Date.Equal(time.Date(2024, time.December, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", set[0].Date)
	}
}

func TestParseCSV_StableOrderForSameDate(t *testing.T) {
	input := "Date,Type,Reading,Reading Source\n" +
		"1 Jan 2025,anytime,100,manual\n" +
		"1 Jan 2025,anytime,101,bill\n"
	set, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set[0].Value != 100 || set[1].Value != 101 {
		t.Fatalf("same-date rows reordered: %v %v", set[0].Value, set[1].Value)
	}
}

func TestParseCSV_RejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want error
	}{
		{"bad date", "Dec 17th,anytime,1000,bill", ErrBadDate},
		{"bad number", "1 Jan 2025,anytime,12x4,bill", ErrBadNumber},
		{"negative reading", "1 Jan 2025,anytime,-5,bill", ErrNegativeReading},
		{"unknown type", "1 Jan 2025,offpeak,1000,bill", ErrUnknownReadingType},
		{"unknown source", "1 Jan 2025,anytime,1000,guess", ErrUnknownSource},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := "Date,Type,Reading,Reading Source\n" + tc.row + "\n"
			_, err := ParseCSV(strings.NewReader(input))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Line != 2 {
				t.Fatalf("expected line 2, got %d", parseErr.Line)
			}
		})
	}
}

func TestParseCSV_RejectsWrongHeader(t *testing.T) {
	input := "Day,Type,Reading,Reading Source\n1 Jan 2025,anytime,1000,bill\n"
	_, err := ParseCSV(strings.NewReader(input))
	if !errors.Is(err, ErrBadHeader) {
		t.Fatalf("expected header error, got %v", err)
	}
}

func TestParseCSV_RejectsEmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Date,Type,Reading,Reading Source\n"))
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected empty file error, got %v", err)
	}
}
