// Package stream reads newline-delimited labels from any io.Reader. It backs
// the stdin transport and the serial transport.
package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue"
)

// stdin is read by the stdin transport. Closing os.Stdin does not interrupt
// a blocked read, so it is never closed; Start stops waiting for it instead.
var stdin io.Reader = os.Stdin

func init() {
	labelcue.Register("stdin", func(opts labelcue.TransportOptions, log *zap.Logger) labelcue.Transport {
		return New("stdin", io.NopCloser(stdin), opts.Buffer, log)
	})
}

var _ labelcue.Transport = (*Transport)(nil)

// Transport turns a reader into a line channel.
type Transport struct {
	kind   string
	r      io.ReadCloser
	buffer int
	log    *zap.Logger

	started bool
	mu      sync.Mutex
}

// New wraps r. r is closed when the context passed to Start is canceled,
// which unblocks a pending read on ports and pipes. For readers whose Close
// cannot interrupt a read, the line channel still closes on cancel and the
// read is left to finish on its own.
func New(kind string, r io.ReadCloser, buffer int, log *zap.Logger) *Transport {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{kind: kind, r: r, buffer: buffer, log: log}
}

func (t *Transport) Kind() string {
	return t.kind
}

// Start begins reading. Text after the last delimiter at end of input is
// dropped. The returned channel is closed at end of input, on a read error,
// or as soon as ctx is canceled.
func (t *Transport) Start(ctx context.Context) (<-chan string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil, errors.New("stream transport already started")
	}
	t.started = true

	lines := make(chan string, t.buffer)
	read := make(chan string)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = t.r.Close()
	}()

	go func() {
		defer close(done)
		defer close(read)

		reader := bufio.NewReader(t.r)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if line != "" {
					t.log.Debug("discarding unterminated line", zap.String("partial", line))
				}
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					t.log.Warn("read failed", zap.Error(err))
				}
				return
			}

			select {
			case read <- strings.TrimSuffix(line, "\n"):
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(lines)
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-read:
				if !ok {
					return
				}
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return lines, nil
}
