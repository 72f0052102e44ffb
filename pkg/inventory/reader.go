package inventory

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format selects how assets are framed on the input stream.
type Format string

const (
	// FormatJSONL is one asset object per line.
	FormatJSONL Format = "jsonl"
	// FormatJSON is a single JSON array of asset objects.
	FormatJSON Format = "json"
)

// ParseFormat converts a flag or config value to a Format. An empty value
// selects FormatJSONL.
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "jsonl", "ndjson":
		return FormatJSONL, nil
	case "json", "array":
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown input format %q (want jsonl or json)", v)
	}
}

// ReadArray decodes a whole JSON array of assets. Nothing is returned unless
// the complete document parses, so truncated input yields no assets.
func ReadArray(r io.Reader) ([]Asset, error) {
	dec := json.NewDecoder(r)

	var assets []Asset
	if err := dec.Decode(&assets); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if assets == nil {
		return nil, &DecodeError{Err: errors.New("expected an array of assets, got null")}
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after asset array")
		}
		return nil, &DecodeError{Err: err}
	}
	return assets, nil
}

// LineReader streams assets from line-delimited JSON.
type LineReader struct {
	r    *bufio.Reader
	line int
}

// NewLineReader wraps r. Lines may be of any length.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Line returns the number of the last line read.
func (lr *LineReader) Line() int { return lr.line }

// Next returns the next asset. It returns io.EOF once the input is exhausted.
//
// Whitespace-only lines are skipped rather than rejected, so a stray blank
// line in an export does not fail the run. Any other line that is not a JSON
// object does.
func (lr *LineReader) Next() (Asset, error) {
	for {
		raw, err := lr.r.ReadBytes('\n')
		if len(raw) == 0 && err == io.EOF {
			return Asset{}, io.EOF
		}
		if err != nil && err != io.EOF {
			return Asset{}, errors.Wrap(err, "read input")
		}
		lr.line++

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}

		var a Asset
		if uerr := json.Unmarshal(trimmed, &a); uerr != nil {
			return Asset{}, &DecodeError{Line: lr.line, Err: uerr}
		}
		return a, nil
	}
}

// ForEach decodes assets from r in the given framing and hands each one to
// fn in input order. Errors from fn stop the run and are annotated with the
// asset's position.
func ForEach(r io.Reader, format Format, fn func(Asset) error) error {
	switch format {
	case FormatJSON:
		assets, err := ReadArray(r)
		if err != nil {
			return err
		}
		for i, a := range assets {
			if err := fn(a); err != nil {
				return errors.Wrapf(err, "asset %d", i+1)
			}
		}
		return nil
	case FormatJSONL, "":
		lr := NewLineReader(r)
		for {
			a, err := lr.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if err := fn(a); err != nil {
				return errors.Wrapf(err, "line %d", lr.Line())
			}
		}
	default:
		return errors.Newf("unknown input format %q", format)
	}
}
