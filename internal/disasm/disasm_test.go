package disasm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hc08re/internal/image"
	"hc08re/internal/registers"
)

func mustImage(t *testing.T, start uint32, data []byte) *image.Image {
	t.Helper()
	img, err := image.New(start, data)
	require.NoError(t, err)
	return img
}

func TestDecodeAllTilesImage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{1, 2, 3, 17, 256, 4096} {
		data := make([]byte, size)
		rng.Read(data)
		img := mustImage(t, 0x8000, data)

		stream := DecodeAll(img, Options{})
		require.NotEmpty(t, stream)

		next := img.Start()
		for _, in := range stream {
			require.Equal(t, next, in.Address, "gap or overlap at 0x%04X", next)
			require.GreaterOrEqual(t, in.Length, 1)
			require.Len(t, in.Raw, in.Length)
			next += uint32(in.Length)
		}
		assert.Equal(t, img.End(), next)
		assert.Equal(t, img.Len(), stream.Size())
	}
}

func TestDecodeAllDeterministic(t *testing.T) {
	data := make([]byte, 1024)
	rand.New(rand.NewSource(7)).Read(data)
	img := mustImage(t, 0x8000, data)
	regs, _ := registers.Builtin(registers.DefaultTable)

	a := DecodeAll(img, Options{Registers: regs})
	b := DecodeAll(img, Options{Registers: regs})
	assert.Equal(t, a, b)
}

func TestDecodeAllLimit(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{0x9D, 0x9D, 0x9D, 0x9D, 0x81})

	assert.Len(t, DecodeAll(img, Options{Limit: 2}), 2)
	assert.Len(t, DecodeAll(img, Options{Limit: 100}), 5)
	assert.Len(t, DecodeAll(img, Options{}), 5)
}

func TestStreamHelpers(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{0xA6, 0x05, 0x32, 0xB7, 0x18, 0x81})
	regs, _ := registers.Builtin(registers.DefaultTable)
	s := DecodeAll(img, Options{Registers: regs})

	require.Len(t, s, 4)
	assert.Equal(t, 1, s.Undecoded())

	i, ok := s.IndexOf(0x8003)
	require.True(t, ok)
	assert.Equal(t, "STA", s[i].Mnemonic)
	assert.Equal(t, "<SCC1", s[i].Operand)

	_, ok = s.IndexOf(0x8004)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{0xA6, 0x05, 0x81, 0x32})
	s := DecodeAll(img, Options{})

	tests := []struct {
		index int
		want  string
	}{
		{0, "8000: A6 05          LDA      #$05"},
		{1, "8002: 81             RTS"},
		{2, "8003: 32             DB       $32"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(s[tt.index]))
	}
	assert.Equal(t, 3, len(splitLines(s.Listing())))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}

func TestRoutine(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{
		0xA6, 0x05, // LDA #$05
		0x81,       // RTS
		0x9D,       // NOP
		0x9D,       // NOP
		0x80,       // RTI
		0x9D,       // NOP
	})
	s := DecodeAll(img, Options{})

	r := s.Routine(0x8000, 0)
	require.Len(t, r, 2)
	assert.Equal(t, "RTS", r[1].Mnemonic)

	r = s.Routine(0x8003, 0)
	require.Len(t, r, 3)
	assert.Equal(t, "RTI", r[2].Mnemonic)

	assert.Len(t, s.Routine(0x8003, 2), 2)
	assert.Len(t, s.Routine(0x8006, 0), 1)
	assert.Nil(t, s.Routine(0x8001, 0))

	assert.Equal(t, 2, s.Seek(0x8003))
	assert.Equal(t, 1, s.Seek(0x8001))
	assert.Equal(t, len(s), s.Seek(0x9000))
}
