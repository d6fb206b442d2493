//go:build linux

package display

import (
	"context"
	"encoding/binary"
	"testing"
)

func inputEvent(typ, code uint16, value int32) []byte {
	rec := make([]byte, eventSize)
	binary.LittleEndian.PutUint16(rec[timevalSize:], typ)
	binary.LittleEndian.PutUint16(rec[timevalSize+2:], code)
	binary.LittleEndian.PutUint32(rec[timevalSize+4:], uint32(value))
	return rec
}

func TestAnyKeyDown(t *testing.T) {
	const evSyn, evRel, keyEsc = 0x00, 0x02, 1
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"empty", nil, false},
		{"key down", inputEvent(evKey, keyEsc, 1), true},
		{"key up", inputEvent(evKey, keyEsc, 0), false},
		{"autorepeat", inputEvent(evKey, keyEsc, 2), false},
		{"mouse motion", inputEvent(evRel, 0, 1), false},
		{"after sync", append(inputEvent(evSyn, 0, 0), inputEvent(evKey, keyEsc, 1)...), true},
		{"truncated", inputEvent(evKey, keyEsc, 1)[:eventSize-1], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anyKeyDown(tt.buf); got != tt.want {
				t.Errorf("anyKeyDown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchKeysWithoutDevices(t *testing.T) {
	old := inputGlob
	inputGlob = t.TempDir() + "/event*"
	defer func() { inputGlob = old }()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if watchKeys(ctx, func() { t.Error("onKey called") }) {
		t.Error("watchKeys() = true with no devices")
	}
}
