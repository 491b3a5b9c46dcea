// Package nus exposes the Nordic UART Service as a BLE peripheral and turns
// writes to its RX characteristic into labels.
package nus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/linebuf"
)

func init() {
	labelcue.Register("nus", New)
}

var _ labelcue.Transport = (*Transport)(nil)

// DefaultLocalName is advertised when no name is configured.
const DefaultLocalName = "labelcue"

// pendingLines is how many complete lines may wait for the run loop. A newer
// line replaces the waiting one, since BLE write callbacks must not block and
// a stale label is worth less than the current one.
const pendingLines = 1

var (
	ServiceUUID = bluetooth.ServiceUUIDNordicUART
	RXCharUUID  = bluetooth.CharacteristicUUIDUARTRX
	TXCharUUID  = bluetooth.CharacteristicUUIDUARTTX
)

// Transport is a UART-over-BLE peripheral.
type Transport struct {
	opts labelcue.TransportOptions
	log  *zap.Logger

	mu       sync.Mutex
	started  bool
	closed   bool
	lines    chan string
	splitter *linebuf.Splitter
	dropped  int

	rxChar bluetooth.Characteristic
	txChar bluetooth.Characteristic
	adv    *bluetooth.Advertisement
}

func New(opts labelcue.TransportOptions, log *zap.Logger) labelcue.Transport {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.LocalName == "" {
		opts.LocalName = DefaultLocalName
	}
	if opts.Buffer > pendingLines {
		log.Debug("ignoring transport buffer, BLE keeps only the newest line", zap.Int("buffer", opts.Buffer))
	}
	t := &Transport{opts: opts, log: log}
	t.lines = make(chan string, pendingLines)
	t.splitter = linebuf.New(linebuf.DefaultMaxLine, t.deliver)
	return t
}

func (t *Transport) Kind() string {
	return "nus"
}

// Start enables the adapter, registers the UART service and starts
// advertising. Advertising stops when ctx is canceled.
func (t *Transport) Start(ctx context.Context) (<-chan string, error) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return nil, errors.New("nus transport already started")
	}
	t.started = true
	t.mu.Unlock()

	if err := labelcue.TryEnableAdapter(); err != nil {
		return nil, err
	}

	err := labelcue.BTAdapter.AddService(&bluetooth.Service{
		UUID: ServiceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle:     &t.rxChar,
				UUID:       RXCharUUID,
				Flags:      bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: t.onWrite,
			},
			{
				Handle: &t.txChar,
				UUID:   TXCharUUID,
				Flags:  bluetooth.CharacteristicNotifyPermission | bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("adding UART service: %w", err)
	}

	t.adv = labelcue.BTAdapter.DefaultAdvertisement()
	err = t.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    t.opts.LocalName,
		ServiceUUIDs: []bluetooth.UUID{ServiceUUID},
	})
	if err != nil {
		return nil, fmt.Errorf("configuring advertisement: %w", err)
	}
	if err := t.adv.Start(); err != nil {
		return nil, fmt.Errorf("starting advertisement: %w", err)
	}
	t.log.Info("advertising UART service", zap.String("name", t.opts.LocalName))

	go func() {
		<-ctx.Done()
		if err := t.adv.Stop(); err != nil {
			t.log.Warn("failed to stop advertising", zap.Error(err))
		}
		t.close()
	}()

	return t.lines, nil
}

// Dropped counts complete lines replaced by a newer one before the run loop
// took them.
func (t *Transport) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

func (t *Transport) onWrite(client bluetooth.Connection, offset int, value []byte) {
	if offset != 0 {
		// Long writes are not part of the UART profile.
		t.log.Debug("ignoring offset write", zap.Int("offset", offset), zap.Int("len", len(value)))
		return
	}
	_, _ = t.splitter.Write(value)
}

// deliver hands one line to the run loop without blocking the BLE stack.
func (t *Transport) deliver(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	for {
		select {
		case t.lines <- line:
			return
		default:
		}
		// Only deliver sends, under t.mu, so the retry finds the slot free.
		select {
		case stale := <-t.lines:
			t.dropped++
			t.log.Debug("run loop busy, replacing line", zap.String("stale", stale), zap.String("line", line))
		default:
		}
	}
}

func (t *Transport) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.splitter.Reset()
	close(t.lines)
}
