// Package problems resolves a qkey to the ordered sample cases a submission
// is scored against.
package problems

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when no problem is known under a qkey.
var ErrNotFound = errors.New("problem not found")

type SampleCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"output"`
}

// Problem is one cached problem as written by the problem fetcher.
type Problem struct {
	Name    string       `json:"name,omitempty"`
	Link    string       `json:"link,omitempty"`
	Samples []SampleCase `json:"samples"`
}

// Document is the problem cache file.
type Document struct {
	Problems map[string]Problem `json:"problems"`
}

// Lookup yields the sample cases of a problem, in a stable order.
type Lookup interface {
	Samples(ctx context.Context, qkey string) ([]SampleCase, error)
}

// Static is an in-memory Lookup.
type Static map[string][]SampleCase

func (s Static) Samples(_ context.Context, qkey string) ([]SampleCase, error) {
	samples, ok := s[qkey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, qkey)
	}
	out := make([]SampleCase, len(samples))
	copy(out, samples)
	return out, nil
}

// Chain tries each Lookup in order and returns the first answer that is not
// ErrNotFound.
type Chain []Lookup

func (c Chain) Samples(ctx context.Context, qkey string) ([]SampleCase, error) {
	for _, l := range c {
		samples, err := l.Samples(ctx, qkey)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return samples, err
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, qkey)
}

func decode(r io.Reader, compressed bool, v any) error {
	if compressed {
		d, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer d.Close()
		r = d
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode problem data: %w", err)
	}
	return nil
}
