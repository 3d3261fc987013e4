package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/show"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Action
	}{
		{"arrow up", "\x1b[A", []Action{ActionScrollUp}},
		{"arrow down", "\x1b[B", []Action{ActionScrollDown}},
		{"arrows ignored sideways", "\x1b[C\x1b[D", nil},
		{"page keys", "\x1b[5~\x1b[6~", []Action{ActionPageUp, ActionPageDown}},
		{"arrow before tilde", "\x1b[A~", []Action{ActionScrollUp}},
		{"arrow then page key", "\x1b[B\x1b[5~", []Action{ActionScrollDown, ActionPageUp}},
		{"vi keys", "jkJK", []Action{ActionScrollDown, ActionScrollUp, ActionScrollDown, ActionScrollUp}},
		{"wasd", "ws", []Action{ActionScrollUp, ActionScrollDown}},
		{"space and b", " b", []Action{ActionPageDown, ActionPageUp}},
		{"quit", "q", []Action{ActionQuit}},
		{"ctrl-c", "\x03", []Action{ActionQuit}},
		{"mixed", "x\x1b[Bq", []Action{ActionScrollDown, ActionQuit}},
		{"unicode ignored", "é", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInput([]byte(tt.in)))
		})
	}
}

func TestScrollDelta(t *testing.T) {
	assert.Equal(t, -1, scrollDelta(ActionScrollUp, 10))
	assert.Equal(t, 1, scrollDelta(ActionScrollDown, 10))
	assert.Equal(t, -10, scrollDelta(ActionPageUp, 10))
	assert.Equal(t, 10, scrollDelta(ActionPageDown, 10))
	assert.Equal(t, 1, scrollDelta(ActionPageDown, 0))
	assert.Equal(t, 0, scrollDelta(ActionQuit, 10))
}

func TestToMonitorFrame(t *testing.T) {
	var frame dmx.Frame
	frame[2][10] = 42
	got := toMonitorFrame(show.Snapshot{Seq: 3, Fraction: 0.5, Frame: &frame})
	require.Len(t, got.Universes, dmx.Universes)
	assert.Equal(t, uint64(3), got.Seq)
	assert.Equal(t, byte(42), got.Universes[2][10])
	assert.Len(t, got.Universes[0], dmx.ChannelsPerUniverse)

	empty := toMonitorFrame(show.Snapshot{})
	assert.Nil(t, empty.Universes)
}
