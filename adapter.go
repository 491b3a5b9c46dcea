package labelcue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"
)

// FoundDevice is a peripheral seen while scanning.
type FoundDevice struct {
	Name    string
	Address bluetooth.Address
	RSSI    int
	UART    bool
}

func (d FoundDevice) ID() string {
	return d.Address.String()
}

// BTAdapter is the adapter shared by every BLE transport in the process.
var BTAdapter = bluetooth.DefaultAdapter

var (
	enableOnce sync.Once
	enableErr  error
)

// TryEnableAdapter enables BTAdapter the first time it is called and returns
// the same result on every later call.
func TryEnableAdapter() error {
	enableOnce.Do(func() {
		enableErr = BTAdapter.Enable()
		if enableErr != nil {
			enableErr = fmt.Errorf("enabling bluetooth adapter: %w", enableErr)
		}
	})
	return enableErr
}

// Adapter calls made by Scan. Tests replace them.
var (
	enableAdapter = TryEnableAdapter
	startScan     = func(handler func(*bluetooth.Adapter, bluetooth.ScanResult)) error { return BTAdapter.Scan(handler) }
	stopScan      = func() error { return BTAdapter.StopScan() }
)

// Scan listens for advertisements for duration and returns every device that
// advertises the Nordic UART service or whose name starts with one of
// prefixes. With no prefixes only UART devices are reported.
func Scan(ctx context.Context, duration time.Duration, log *zap.Logger, prefixes ...string) ([]FoundDevice, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := enableAdapter(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	mu := sync.Mutex{}
	found := make(map[string]FoundDevice)

	handler := func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		name := result.LocalName()
		uart := result.HasServiceUUID(bluetooth.ServiceUUIDNordicUART)
		if !uart && !hasAnyPrefix(name, prefixes) {
			return
		}

		mu.Lock()
		defer mu.Unlock()
		id := result.Address.String()
		if _, seen := found[id]; !seen {
			log.Info("found device", zap.String("name", name), zap.String("id", id), zap.Bool("uart", uart))
		}
		found[id] = FoundDevice{
			Name:    name,
			Address: result.Address,
			RSSI:    int(result.RSSI),
			UART:    uart,
		}
	}

	scanErrChan := make(chan error, 1)
	go func() {
		log.Debug("starting blocking scan")
		scanErrChan <- startScan(handler)
	}()

	var scanErr error
	select {
	case scanErr = <-scanErrChan:
		if scanErr == nil {
			scanErr = errors.New("scan ended early")
		}
	case <-ctx.Done():
		if err := stopScan(); err != nil {
			log.Warn("failed to stop scan cleanly", zap.Error(err))
		}
		scanErr = <-scanErrChan
	}

	if scanErr != nil {
		return nil, fmt.Errorf("scanning: %w", scanErr)
	}
	results := make([]FoundDevice, 0, len(found))
	for _, d := range found {
		results = append(results, d)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].RSSI > results[j].RSSI })

	log.Info("scan finished", zap.Int("devices", len(results)))
	return results, nil
}

func hasAnyPrefix(name string, prefixes []string) bool {
	if name == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
