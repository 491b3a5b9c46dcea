package all

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlsorensen/labelcue"
)

func TestAllRegistered(t *testing.T) {
	assert.Equal(t, []string{"mock", "nus", "serial", "stdin"}, labelcue.Registered())

	for _, kind := range labelcue.Registered() {
		tr, err := labelcue.NewTransport(labelcue.TransportOptions{Kind: kind}, nil)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, tr.Kind())
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := labelcue.NewTransport(labelcue.TransportOptions{Kind: "carrier-pigeon"}, nil)
	assert.ErrorIs(t, err, labelcue.ErrUnknownTransport)
}
