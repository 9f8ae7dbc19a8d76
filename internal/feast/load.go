package feast

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rharbaugh/calendarium/internal/calendar"
)

// ErrFileMissing is returned by LoadFile when the feast file does not
// exist. Callers treat it as a warning and keep the seasonal calendar.
var ErrFileMissing = errors.New("feast file not found")

// csvFields is the number of columns in a feast row:
// month, day, class, season, subject, description.
const csvFields = 6

// ParseError reports the first bad entry of a feast file. The whole file
// is rejected.
type ParseError struct {
	Path  string
	Line  int // source line, when known
	Entry int // 1-based index in a YAML or TOML list
	Err   error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "feasts"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: feast #%d: %v", path, e.Entry, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile reads feasts from path. The format follows the extension:
// .yaml/.yml and .toml are structured documents with a "feasts" list,
// anything else is CSV.
func LoadFile(path string) ([]Feast, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("open feast file: %w", err)
	}
	defer f.Close()

	var feasts []Feast
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		feasts, err = ParseYAML(f)
	case ".toml":
		feasts, err = ParseTOML(f)
	default:
		feasts, err = ParseCSV(f)
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Path = path
	}
	return feasts, err
}

// ParseCSV reads feast rows. Blank lines and lines starting with # are
// skipped; every other line must hold exactly six comma-separated fields.
// Tokens are case-insensitive and surrounding whitespace is ignored. A quote
// inside an unquoted description is kept as text.
func ParseCSV(r io.Reader) ([]Feast, error) {
	var feasts []Feast

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cr := csv.NewReader(strings.NewReader(text))
		cr.FieldsPerRecord = csvFields
		cr.TrimLeadingSpace = true
		cr.LazyQuotes = true
		fields, err := cr.Read()
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				err = fmt.Errorf("expected %d fields, got %d", csvFields, len(fields))
			}
			return nil, &ParseError{Line: line, Err: err}
		}

		f, err := parseRecord(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		feasts = append(feasts, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feast rows: %w", err)
	}

	return feasts, nil
}

func parseRecord(fields []string) (Feast, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	month, err := strconv.Atoi(fields[0])
	if err != nil {
		return Feast{}, fmt.Errorf("%w: month %q is not a number", ErrInvalidFeast, fields[0])
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return Feast{}, fmt.Errorf("%w: day %q is not a number", ErrInvalidFeast, fields[1])
	}
	class, err := calendar.ParseDayClass(fields[2])
	if err != nil {
		return Feast{}, fmt.Errorf("%w: %v", ErrInvalidFeast, err)
	}
	season, err := calendar.ParseSeason(fields[3])
	if err != nil {
		return Feast{}, fmt.Errorf("%w: %v", ErrInvalidFeast, err)
	}
	subject, err := calendar.ParseSubject(fields[4])
	if err != nil {
		return Feast{}, fmt.Errorf("%w: %v", ErrInvalidFeast, err)
	}

	f := Feast{
		Month:       time.Month(month),
		Day:         day,
		Class:       class,
		Season:      season,
		Subject:     subject,
		Description: calendar.TruncateDescription(fields[5]),
	}
	if err := f.Validate(); err != nil {
		return Feast{}, err
	}
	return f, nil
}

// ParseYAML reads a document of the form
//
//	feasts:
//	  - {month: 3, day: 19, class: solemnity, season: lent, subject: none, description: Saint Joseph}
func ParseYAML(r io.Reader) ([]Feast, error) {
	var doc struct {
		Feasts []yaml.Node `yaml:"feasts"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode feast yaml: %w", err)
	}

	feasts := make([]Feast, 0, len(doc.Feasts))
	for i, node := range doc.Feasts {
		var f Feast
		if err := node.Decode(&f); err != nil {
			return nil, &ParseError{Line: node.Line, Entry: i + 1, Err: err}
		}
		if err := f.Validate(); err != nil {
			return nil, &ParseError{Line: node.Line, Entry: i + 1, Err: err}
		}
		f.Description = calendar.TruncateDescription(f.Description)
		feasts = append(feasts, f)
	}
	return feasts, nil
}

// ParseTOML reads a document of [[feasts]] tables.
func ParseTOML(r io.Reader) ([]Feast, error) {
	var doc struct {
		Feasts []Feast `toml:"feasts"`
	}
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, _ := derr.Position()
			return nil, &ParseError{Line: row, Err: err}
		}
		return nil, fmt.Errorf("decode feast toml: %w", err)
	}

	for i := range doc.Feasts {
		if err := doc.Feasts[i].Validate(); err != nil {
			return nil, &ParseError{Entry: i + 1, Err: err}
		}
		doc.Feasts[i].Description = calendar.TruncateDescription(doc.Feasts[i].Description)
	}
	return doc.Feasts, nil
}
