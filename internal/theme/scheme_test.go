package theme

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseMode(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ModeDark, mode)

	_, err = ParseMode("sepia")
	require.Error(t, err)
}

func TestModeNextWrapsAround(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ModeDark, ModeLight.Next())
	assert.Equal(t, ModeSystem, ModeDark.Next())
	assert.Equal(t, ModeLight, ModeSystem.Next())
	assert.Equal(t, ModeLight, Mode("").Next())
}

func TestStaticSchemeNotifiesOnlyOnChange(t *testing.T) {
	t.Parallel()

	scheme := NewStaticScheme(false)
	var calls int
	unsubscribe := scheme.Subscribe(func(bool) { calls++ })

	scheme.Set(false)
	scheme.Set(true)
	scheme.Set(true)
	assert.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe()
	scheme.Set(false)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, scheme.Subscribers())
}

func TestPollingSchemeNotifiesAndStops(t *testing.T) {
	t.Parallel()

	var dark atomic.Bool
	var polls atomic.Int32
	detect := func(context.Context) bool {
		polls.Add(1)
		return dark.Load()
	}

	scheme := NewPollingScheme(detect, 5*time.Millisecond)
	assert.False(t, scheme.Dark())

	changes := make(chan bool, 4)
	unsubscribe := scheme.Subscribe(func(d bool) { changes <- d })

	dark.Store(true)
	select {
	case got := <-changes:
		assert.True(t, got)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a scheme change notification")
	}
	assert.True(t, scheme.Dark())

	unsubscribe()
	stopped := polls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, polls.Load(), "polling stops after the last unsubscribe")
}

func TestParseGnomeScheme(t *testing.T) {
	t.Parallel()

	dark, ok := parseGnomeScheme("'prefer-dark'\n")
	assert.True(t, ok)
	assert.True(t, dark)

	dark, ok = parseGnomeScheme("'prefer-light'")
	assert.True(t, ok)
	assert.False(t, dark)

	_, ok = parseGnomeScheme("'default'")
	assert.False(t, ok)
}

func TestDetectSystemFallsBack(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A cancelled context makes the desktop query fail, leaving the fallback.
	assert.True(t, DetectSystem(true)(ctx))
}

func TestPaletteFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DarkPalette(), PaletteFor(ClassDark))
	assert.Equal(t, LightPalette(), PaletteFor(ClassLight))
	assert.Equal(t, LightPalette(), PaletteFor("unknown"))
}
