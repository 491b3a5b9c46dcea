package labelcue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlsorensen/labelcue/pkg/icons"
)

func TestDispatch(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(DefaultTable(), rec, rec, nil)

	d.Dispatch("")
	d.Dispatch("Nope")
	assert.Empty(t, rec.Events())

	d.Dispatch("Klasse3")
	assert.Equal(t, []string{"icon triangle", "tone 523 200ms"}, rec.Events())
}

func TestDispatch_SetTable(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(DefaultTable(), rec, rec, nil)

	next, err := NewTable([]Entry{
		{Label: "Cat", Reaction: Reaction{Icon: icons.Happy, Frequency: 880, Duration: 100 * time.Millisecond}},
	}, nil)
	require.NoError(t, err)
	d.SetTable(next)

	d.Dispatch("Klasse1")
	d.Dispatch("Cat")
	assert.Equal(t, []string{"icon happy", "tone 880 100ms"}, rec.Events())
	assert.Same(t, next, d.Table())
}

func TestDispatch_SwapWhileDispatching(t *testing.T) {
	rec := &Recorder{}
	d := NewDispatcher(DefaultTable(), rec, rec, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			d.SetTable(DefaultTable())
		}
	}()
	for i := 0; i < 100; i++ {
		d.Dispatch("Klasse1")
	}
	wg.Wait()

	assert.Len(t, rec.Events(), 200)
}
