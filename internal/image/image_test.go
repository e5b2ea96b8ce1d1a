package image

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesInput(t *testing.T) {
	data := []byte{0xA6, 0x05, 0x81}
	im, err := New(0x8000, data)
	require.NoError(t, err)

	data[0] = 0x00
	b, ok := im.ByteAt(0x8000)
	require.True(t, ok)
	assert.Equal(t, byte(0xA6), b)

	assert.Equal(t, uint32(0x8000), im.Start())
	assert.Equal(t, uint32(0x8003), im.End())
	assert.Equal(t, int(im.End()-im.Start()), im.Len())
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(0x8000, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBounds(t *testing.T) {
	im, err := New(0xFFFC, []byte{0x80, 0x00, 0x81, 0x23})
	require.NoError(t, err)

	tests := []struct {
		name string
		addr uint32
		ok   bool
	}{
		{"below start", 0xFFFB, false},
		{"first", 0xFFFC, true},
		{"last", 0xFFFF, true},
		{"past end", 0x10000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := im.ByteAt(tt.addr)
			assert.Equal(t, tt.ok, ok)
		})
	}

	w, ok := im.Word(0xFFFE)
	require.True(t, ok)
	assert.Equal(t, uint16(0x8123), w)

	_, ok = im.Word(0xFFFF)
	assert.False(t, ok, "word straddling the end must not be readable")

	_, ok = im.Slice(0xFFFD, 4)
	assert.False(t, ok)
}

func TestReadBinaryAndWriteTo(t *testing.T) {
	src := []byte{0x9D, 0x9D, 0x20, 0xFE}
	im, err := ReadBinary(bytes.NewReader(src), 0x8000)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := im.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, out.Bytes())
}
