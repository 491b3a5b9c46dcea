// Package all is a convenience wrapper that registers every transport.
// Importing this package lets labelcue.NewTransport find any supported kind.
package all

// Import each implementation package for its side-effects (the init() function).
import (
	_ "github.com/mlsorensen/labelcue/pkg/transports/mock"
	_ "github.com/mlsorensen/labelcue/pkg/transports/nus"
	_ "github.com/mlsorensen/labelcue/pkg/transports/serial"
	_ "github.com/mlsorensen/labelcue/pkg/transports/stream"
)
