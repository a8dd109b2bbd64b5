package readings

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// expectedHeader is the required CSV header, in order.
var expectedHeader = []string{"Date", "Type", "Reading", "Reading Source"}

// dateLayouts are the accepted date formats: "17 Dec 2024" from exported
// statements and "17/12/2024" from older manual spreadsheets.
var dateLayouts = []string{"2 Jan 2006", "2/1/2006"}

// ParseCSV parses meter readings from CSV text.
//
// The header row must match Date,Type,Reading,Reading Source exactly.
// Reading values may carry thousands-separator commas and surrounding
// whitespace. Any malformed row rejects the whole file with a *ParseError
// naming the line and field. The result is sorted by date ascending;
// same-date rows keep their input order.
func ParseCSV(r io.Reader) ([]Reading, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(expectedHeader)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("readings: read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var result []Reading
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}

		reading, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		result = append(result, reading)
	}
	if len(result) == 0 {
		return nil, ErrEmptyFile
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func checkHeader(header []string) error {
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], want)
		}
	}
	return nil
}

func parseRecord(record []string, line int) (Reading, error) {
	date, err := parseDate(record[0])
	if err != nil {
		return Reading{}, &ParseError{Line: line, Field: "date", Value: record[0], Err: err}
	}

	readingType, err := ParseReadingType(record[1])
	if err != nil {
		return Reading{}, &ParseError{Line: line, Field: "type", Value: record[1], Err: err}
	}

	value, err := parseValue(record[2])
	if err != nil {
		return Reading{}, &ParseError{Line: line, Field: "reading", Value: record[2], Err: err}
	}

	source, err := ParseSource(record[3])
	if err != nil {
		return Reading{}, &ParseError{Line: line, Field: "source", Value: record[3], Err: err}
	}

	return Reading{Date: date, Type: readingType, Value: value, Source: source}, nil
}

func parseDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDate
}

func parseValue(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, ErrBadNumber
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	if value < 0 {
		return 0, ErrNegativeReading
	}
	return value, nil
}
