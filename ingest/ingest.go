// Package ingest turns raw input into sentences ready for analysis and
// queues them for the analysis pipeline.
package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// ErrQueueFull is returned by Queue.Publish when the buffer is full.
var ErrQueueFull = errors.New("ingest: queue full")

// Sentence represents an ingested Japanese sentence and metadata.
type Sentence struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// New trims and NFC-normalises text and stamps it with a fresh ID. Empty
// text is a valid sentence and analyses to an empty report.
func New(text string) Sentence {
	return Sentence{
		ID:        uuid.NewString(),
		Text:      norm.NFC.String(strings.TrimSpace(text)),
		CreatedAt: time.Now().UTC(),
	}
}

// Lines splits input into one sentence per non-blank line.
func Lines(input string) []Sentence {
	var out []Sentence
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, New(line))
	}
	return out
}

// Queue is a buffered channel of sentences decoupling producers from the
// analysis pipeline.
type Queue struct {
	ch chan Sentence
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Sentence, size)}
}

// Publish ingests text and enqueues the sentence without blocking.
func (q *Queue) Publish(text string) (Sentence, error) {
	s := New(text)
	select {
	case q.ch <- s:
		return s, nil
	default:
		return s, ErrQueueFull
	}
}

// Send enqueues s, waiting for room until ctx is done.
func (q *Queue) Send(ctx context.Context, s Sentence) error {
	select {
	case q.ch <- s:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// C returns the receive side of the queue.
func (q *Queue) C() <-chan Sentence { return q.ch }

// Close ends the stream; no Publish or Send may follow.
func (q *Queue) Close() { close(q.ch) }
