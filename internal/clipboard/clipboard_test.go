package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := &Memory{}

	require.NoError(t, m.WriteText(context.Background(), "a\tb"))

	assert.Equal(t, "a\tb", m.Text())
	assert.Equal(t, 1, m.Writes())
}

func TestMemoryError(t *testing.T) {
	m := &Memory{Err: errors.New("denied")}

	err := m.WriteText(context.Background(), "x")

	assert.EqualError(t, err, "denied")
	assert.Zero(t, m.Writes())
}

func TestOSC52WritesSequence(t *testing.T) {
	var buf bytes.Buffer
	w := &OSC52{out: &buf}

	require.NoError(t, w.WriteText(context.Background(), "v00\tv01"))

	encoded := base64.StdEncoding.EncodeToString([]byte("v00\tv01"))
	assert.Contains(t, buf.String(), "\x1b]52;c;"+encoded)
}

func TestOSC52WithoutOutput(t *testing.T) {
	w := &OSC52{}

	assert.ErrorIs(t, w.WriteText(context.Background(), "x"), ErrUnsupported)
}

func TestFallbackUsesFirstSuccess(t *testing.T) {
	failing := &Memory{Err: errors.New("no display")}
	working := &Memory{}

	require.NoError(t, Fallback{failing, working}.WriteText(context.Background(), "x"))

	assert.Equal(t, "x", working.Text())
}

func TestFallbackJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	err := Fallback{&Memory{Err: first}, &Memory{Err: second}}.WriteText(context.Background(), "x")

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.ErrorIs(t, Fallback{}.WriteText(context.Background(), "x"), ErrUnsupported)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, (&Memory{}).WriteText(ctx, "x"), context.Canceled)
}

func TestNew(t *testing.T) {
	w, err := New("memory", nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, w)

	w, err = New("", nil)
	require.NoError(t, err)
	assert.IsType(t, Fallback{}, w)

	_, err = New("carrier-pigeon", nil)
	assert.Error(t, err)
}
