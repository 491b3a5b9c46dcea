package labelcue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/bluetooth"
)

// fakeScanner replaces the adapter calls made by Scan for one test.
func fakeScanner(t *testing.T, start func(func(*bluetooth.Adapter, bluetooth.ScanResult)) error, stop func() error) {
	t.Helper()
	savedEnable, savedStart, savedStop := enableAdapter, startScan, stopScan
	t.Cleanup(func() {
		enableAdapter, startScan, stopScan = savedEnable, savedStart, savedStop
	})
	enableAdapter = func() error { return nil }
	startScan = start
	stopScan = stop
}

func TestScan_FailsFast(t *testing.T) {
	errBusy := errors.New("adapter busy")
	fakeScanner(t,
		func(func(*bluetooth.Adapter, bluetooth.ScanResult)) error { return errBusy },
		func() error { return nil },
	)

	begin := time.Now()
	_, err := Scan(context.Background(), time.Minute, nil)
	require.ErrorIs(t, err, errBusy)
	assert.Less(t, time.Since(begin), 5*time.Second)
}

func TestScan_StopsAfterDuration(t *testing.T) {
	stopped := make(chan struct{})
	fakeScanner(t,
		func(func(*bluetooth.Adapter, bluetooth.ScanResult)) error {
			<-stopped
			return nil
		},
		func() error {
			close(stopped)
			return nil
		},
	)

	found, err := Scan(context.Background(), 20*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScan_EnableError(t *testing.T) {
	fakeScanner(t, nil, nil)
	errOff := errors.New("powered off")
	enableAdapter = func() error { return errOff }

	_, err := Scan(context.Background(), time.Minute, nil)
	assert.ErrorIs(t, err, errOff)
}

func TestHasAnyPrefix(t *testing.T) {
	assert.True(t, hasAnyPrefix("Calliope mini", []string{"BBC", "Calliope"}))
	assert.False(t, hasAnyPrefix("", []string{""}))
	assert.False(t, hasAnyPrefix("Scale", nil))
}
