// Package analyzer reads the spectral analyzer's per-tick scalars from a
// CSV stream, one tick per line:
//
//	volume_level,centroid_hz,low_energy,mid_energy,high_energy
package analyzer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ademuri/speech-profile-tools/internal/features"
)

var (
	ErrNotFinite      = errors.New("value is not finite")
	ErrNegativeEnergy = errors.New("band energy is negative")
)

var Header = []string{"volume_level", "centroid_hz", "low_energy", "mid_energy", "high_energy"}

// ParseError reports a malformed input line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader yields one features.Raw per non-blank line. A header line, if
// present, must be the first line. Lines starting with '#' are skipped.
type Reader struct {
	r     *csv.Reader
	first bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return &Reader{r: cr, first: true}
}

// Next returns the next tick, or io.EOF at the end of the stream.
func (r *Reader) Next() (features.Raw, error) {
	for {
		record, err := r.r.Read()
		if err == io.EOF {
			return features.Raw{}, io.EOF
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return features.Raw{}, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return features.Raw{}, fmt.Errorf("unable to read analyzer input: %w", err)
		}
		line, _ := r.r.FieldPos(0)

		first := r.first
		r.first = false
		if first && isHeader(record) {
			continue
		}
		return parseRecord(record, line)
	}
}

// ReadAll reads the remaining ticks.
func (r *Reader) ReadAll() ([]features.Raw, error) {
	var ticks []features.Raw
	for {
		raw, err := r.Next()
		if err == io.EOF {
			return ticks, nil
		}
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, raw)
	}
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), Header[0])
}

func parseRecord(record []string, line int) (features.Raw, error) {
	if len(record) != len(Header) {
		return features.Raw{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("got %d fields, want %d", len(record), len(Header)),
		}
	}
	var values [5]float64
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return features.Raw{}, &ParseError{Line: line, Err: fmt.Errorf("%s: %w", Header[i], err)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return features.Raw{}, &ParseError{Line: line, Err: fmt.Errorf("%s: %w", Header[i], ErrNotFinite)}
		}
		// Band energies are levels on a 0-255 scale.
		if i >= 2 && v < 0 {
			return features.Raw{}, &ParseError{Line: line, Err: fmt.Errorf("%s: %w", Header[i], ErrNegativeEnergy)}
		}
		values[i] = v
	}
	return features.Raw{
		VolumeLevel: values[0],
		CentroidHz:  values[1],
		LowEnergy:   values[2],
		MidEnergy:   values[3],
		HighEnergy:  values[4],
	}, nil
}

// Write encodes ticks in the format Reader accepts, header first.
func Write(w io.Writer, ticks []features.Raw) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, t := range ticks {
		err := cw.Write([]string{
			formatFloat(t.VolumeLevel),
			formatFloat(t.CentroidHz),
			formatFloat(t.LowEnergy),
			formatFloat(t.MidEnergy),
			formatFloat(t.HighEnergy),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
