// Package serial receives labels over a USB/UART serial line, the wired
// alternative to the BLE UART service.
package serial

import (
	"context"
	"errors"
	"fmt"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue"
	"github.com/mlsorensen/labelcue/pkg/transports/stream"
)

const DefaultBaudRate = 115200

func init() {
	labelcue.Register("serial", New)
}

var _ labelcue.Transport = (*Transport)(nil)

// ErrNoPort is returned when no port is configured and none can be found.
var ErrNoPort = errors.New("no serial port available")

// Transport reads lines from a serial port.
type Transport struct {
	opts labelcue.TransportOptions
	log  *zap.Logger

	// open is swapped in tests.
	open  func(name string, mode *serial.Mode) (serial.Port, error)
	ports func() ([]string, error)
}

func New(opts labelcue.TransportOptions, log *zap.Logger) labelcue.Transport {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BaudRate <= 0 {
		opts.BaudRate = DefaultBaudRate
	}
	return &Transport{
		opts:  opts,
		log:   log,
		open:  serial.Open,
		ports: serial.GetPortsList,
	}
}

func (t *Transport) Kind() string {
	return "serial"
}

// Start opens the port. With no port configured the first port the system
// reports is used.
func (t *Transport) Start(ctx context.Context) (<-chan string, error) {
	name, err := t.portName()
	if err != nil {
		return nil, err
	}

	port, err := t.open(name, &serial.Mode{
		BaudRate: t.opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	t.log.Info("serial port open", zap.String("port", name), zap.Int("baud", t.opts.BaudRate))

	return stream.New(t.Kind(), port, t.opts.Buffer, t.log).Start(ctx)
}

func (t *Transport) portName() (string, error) {
	if t.opts.Port != "" {
		return t.opts.Port, nil
	}
	ports, err := t.ports()
	if err != nil {
		return "", fmt.Errorf("listing serial ports: %w", err)
	}
	if len(ports) == 0 {
		return "", ErrNoPort
	}
	t.log.Debug("no port configured, using first found", zap.Strings("ports", ports))
	return ports[0], nil
}
