package pose

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Provider yields pose samples at its own cadence until ctx is done or the
// source is exhausted. emit may be called from any goroutine the provider
// owns, never concurrently with itself.
type Provider interface {
	Run(ctx context.Context, emit func(Sample)) error
}

// TimedSample is a sample with its offset from the start of a recording.
type TimedSample struct {
	At time.Duration
	Sample
}

// wireSample is the JSON form of one reading: {"x":0.5,"y":0.4,"t":120}.
// An empty object or null means no landmark. t is milliseconds since the
// start of the recording and is optional.
type wireSample struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	T *float64 `json:"t"`
}

// ErrBadSample is wrapped by DecodeSample for malformed input.
var ErrBadSample = errors.New("pose: bad sample")

// DecodeSample parses one JSON sample.
func DecodeSample(data []byte) (TimedSample, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return TimedSample{}, nil
	}

	var w wireSample
	if err := json.Unmarshal(data, &w); err != nil {
		return TimedSample{}, fmt.Errorf("%w: %v", ErrBadSample, err)
	}

	var ts TimedSample
	if w.T != nil {
		if *w.T < 0 {
			return TimedSample{}, fmt.Errorf("%w: negative timestamp %v", ErrBadSample, *w.T)
		}
		ts.At = time.Duration(*w.T * float64(time.Millisecond))
	}
	if w.X == nil || w.Y == nil {
		return ts, nil
	}
	ts.Sample = At(*w.X, *w.Y)
	return ts, nil
}

// ReadRecording decodes every line of r. Blank lines are skipped.
func ReadRecording(r io.Reader) ([]TimedSample, error) {
	var out []TimedSample
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		ts, err := DecodeSample(sc.Bytes())
		if err != nil {
			return nil, fmt.Errorf("pose: line %d: %w", line, err)
		}
		out = append(out, ts)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pose: read recording: %w", err)
	}
	return out, nil
}

// ReaderProvider streams JSON-lines samples from a reader, typically stdin
// or a named pipe written by an external pose estimator.
type ReaderProvider struct {
	R      io.Reader
	Logger *log.Logger
}

// NewReaderProvider creates a provider reading from r.
func NewReaderProvider(r io.Reader, logger *log.Logger) *ReaderProvider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ReaderProvider{R: r, Logger: logger}
}

// Run emits one sample per line. Malformed lines are logged and skipped.
// Cancellation is observed between lines.
func (p *ReaderProvider) Run(ctx context.Context, emit func(Sample)) error {
	sc := bufio.NewScanner(p.R)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		ts, err := DecodeSample(sc.Bytes())
		if err != nil {
			p.Logger.Warn("skipping pose sample", "err", err)
			continue
		}
		emit(ts.Sample)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("pose: reader: %w", err)
	}
	return nil
}

// ScriptedProvider replays a fixed sequence of samples at their offsets.
type ScriptedProvider struct {
	Steps []TimedSample
	Loop  bool
}

// NewScriptedProvider creates a provider replaying steps.
func NewScriptedProvider(steps []TimedSample, loop bool) *ScriptedProvider {
	return &ScriptedProvider{Steps: steps, Loop: loop}
}

// Run emits every step once its offset has elapsed.
func (p *ScriptedProvider) Run(ctx context.Context, emit func(Sample)) error {
	if len(p.Steps) == 0 {
		return nil
	}
	for {
		start := time.Now()
		for _, step := range p.Steps {
			if wait := step.At - time.Since(start); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case <-timer.C:
				}
			} else if ctx.Err() != nil {
				return nil
			}
			emit(step.Sample)
		}
		if !p.Loop {
			return nil
		}
	}
}
