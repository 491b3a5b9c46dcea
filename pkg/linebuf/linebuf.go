// Package linebuf reassembles newline-delimited text from arbitrarily chunked
// writes, such as BLE characteristic writes limited by the ATT MTU.
package linebuf

import (
	"bytes"
	"sync"
)

// Delimiter ends a line. It is never part of the emitted text.
const Delimiter = '\n'

// DefaultMaxLine bounds the pending partial line.
const DefaultMaxLine = 256

// Splitter buffers at most one unterminated line. Every complete line is
// passed to the emit callback without its delimiter. A pending line longer
// than the limit is discarded up to the next delimiter.
//
// Concurrent writes are serialized and lines are emitted in the order they
// were completed. emit must not call Write.
type Splitter struct {
	wmu      sync.Mutex // held across split and emit
	mu       sync.Mutex
	pending  []byte
	max      int
	dropping bool
	dropped  int
	emit     func(line string)
}

// New creates a splitter. maxLine <= 0 means DefaultMaxLine.
func New(maxLine int, emit func(line string)) *Splitter {
	if maxLine <= 0 {
		maxLine = DefaultMaxLine
	}
	return &Splitter{max: maxLine, emit: emit}
}

// Write feeds a chunk. It never fails; the error return satisfies io.Writer.
func (s *Splitter) Write(p []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	lines := s.split(p)
	s.mu.Unlock()

	for _, l := range lines {
		s.emit(l)
	}
	return len(p), nil
}

// Pending returns the buffered partial line.
func (s *Splitter) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.pending)
}

// Dropped counts lines discarded for exceeding the limit.
func (s *Splitter) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Reset discards any partial line, e.g. when a client disconnects.
func (s *Splitter) Reset() {
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.dropping = false
	s.mu.Unlock()
}

func (s *Splitter) split(p []byte) []string {
	var lines []string
	for len(p) > 0 {
		i := bytes.IndexByte(p, Delimiter)
		chunk := p
		if i >= 0 {
			chunk = p[:i]
		}

		if !s.dropping {
			if len(s.pending)+len(chunk) > s.max {
				s.pending = s.pending[:0]
				s.dropping = true
				s.dropped++
			} else {
				s.pending = append(s.pending, chunk...)
			}
		}

		if i < 0 {
			break
		}
		if !s.dropping {
			lines = append(lines, string(s.pending))
		}
		s.pending = s.pending[:0]
		s.dropping = false
		p = p[i+1:]
	}
	return lines
}
