package analysis

import (
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

func gz60(t *testing.T) *registers.Table {
	t.Helper()
	tbl, ok := registers.Builtin(registers.DefaultTable)
	require.True(t, ok)
	return tbl
}

func TestFindSubroutines(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []uint32
	}{
		{"jsr direct keeps raw operand", []byte{0xBD, 0x42}, []uint32{0x42}},
		{"jsr extended", []byte{0xCD, 0x91, 0x23}, []uint32{0x9123}},
		{"bsr forward", []byte{0xAD, 0x10}, []uint32{0x8012}},
		{"bsr backward", []byte{0x9D, 0x9D, 0xAD, 0xFC}, []uint32{0x8000}},
		{"sorted and unique", []byte{0xCD, 0x91, 0x00, 0xCD, 0x80, 0x00, 0xCD, 0x91, 0x00}, []uint32{0x8000, 0x9100}},
		{"truncated call ignored", []byte{0x9D, 0xCD, 0x91}, []uint32{}},
		{"operand bytes are skipped", []byte{0xCD, 0xAD, 0x00}, []uint32{0xAD00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSubroutines(mustImage(t, 0x8000, tt.data))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindLoops(t *testing.T) {
	t.Run("branch to self", func(t *testing.T) {
		loops := FindLoops(mustImage(t, 0x8000, []byte{0x20, 0xFE}))
		require.Len(t, loops, 1)
		assert.Equal(t, Loop{Branch: 0x8000, Target: 0x8000, Distance: 0}, loops[0])
	})

	t.Run("forward branch is not a loop", func(t *testing.T) {
		assert.Empty(t, FindLoops(mustImage(t, 0x8000, []byte{0x26, 0x04})))
	})

	t.Run("displacement -1 lands after the branch", func(t *testing.T) {
		assert.Empty(t, FindLoops(mustImage(t, 0x8000, []byte{0x20, 0xFF})))
	})

	t.Run("brn and bsr excluded", func(t *testing.T) {
		assert.Empty(t, FindLoops(mustImage(t, 0x8000, []byte{0x21, 0xFE, 0xAD, 0xFE})))
	})

	t.Run("signed branches included", func(t *testing.T) {
		loops := FindLoops(mustImage(t, 0x8000, []byte{0x9D, 0x9D, 0x93, 0xFC}))
		require.Len(t, loops, 1)
		assert.Equal(t, uint32(0x8002), loops[0].Branch)
		assert.Equal(t, uint32(0x8000), loops[0].Target)
		assert.Equal(t, uint32(2), loops[0].Distance)
	})

	t.Run("repeated loops are not merged", func(t *testing.T) {
		loops := FindLoops(mustImage(t, 0x8000, []byte{0x20, 0xFE, 0x20, 0xFC}))
		require.Len(t, loops, 2)
		assert.Equal(t, uint32(0x8000), loops[0].Target)
		assert.Equal(t, uint32(0x8000), loops[1].Target)
	})
}

func TestLargeLoops(t *testing.T) {
	loops := []Loop{
		{Branch: 0x8100, Target: 0x8000, Distance: 0x100},
		{Branch: 0x8010, Target: 0x8000, Distance: 0x10},
		{Branch: 0x8200, Target: 0x8000, Distance: 0x200},
		{Branch: 0x8032, Target: 0x8000, Distance: 50},
	}
	got := LargeLoops(loops, DefaultLargeLoop)
	require.Len(t, got, 2)
	assert.Equal(t, uint32(0x200), got[0].Distance)
	assert.Equal(t, uint32(0x100), got[1].Distance)
}

func TestClassifyAccessesRegisters(t *testing.T) {
	tests := []struct {
		name   string
		start  uint32
		data   []byte
		reg    uint32
		reads  []uint32
		writes []uint32
	}{
		{"sta direct", 0x9000, []byte{0xB7, 0x18}, 0x18, nil, []uint32{0x9000}},
		{"stx direct", 0x9000, []byte{0xBF, 0x18}, 0x18, nil, []uint32{0x9000}},
		{"lda direct", 0x9000, []byte{0xB6, 0x1B}, 0x1B, []uint32{0x9000}, nil},
		{"ldx direct", 0x9000, []byte{0xBE, 0x1B}, 0x1B, []uint32{0x9000}, nil},
		{"bset", 0x9000, []byte{0x10, 0x00}, 0x00, nil, []uint32{0x9000}},
		{"bclr", 0x9000, []byte{0x1F, 0x00}, 0x00, nil, []uint32{0x9000}},
		{"brset", 0x9000, []byte{0x00, 0x1B, 0xFD}, 0x1B, []uint32{0x9000}, nil},
		{"lda extended config", 0x9000, []byte{0xC6, 0xFE, 0x01}, 0xFE01, []uint32{0x9000}, nil},
		{"sta extended config", 0x9000, []byte{0xC7, 0xFE, 0x00}, 0xFE00, nil, []uint32{0x9000}},
		{"sites accumulate", 0x9000, []byte{0xB7, 0x18, 0xB6, 0x18, 0xB7, 0x18}, 0x18, []uint32{0x9002}, []uint32{0x9000, 0x9004}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			am := ClassifyAccesses(mustImage(t, tt.start, tt.data), gz60(t), DefaultRAM)
			ra, ok := am.Register(tt.reg)
			require.True(t, ok)
			assert.Equal(t, tt.reads, ra.Reads)
			assert.Equal(t, tt.writes, ra.Writes)
		})
	}
}

func TestClassifyAccessesScanSCC1(t *testing.T) {
	am := ClassifyAccesses(mustImage(t, 0x9000, []byte{0xB7, 0x18}), gz60(t), DefaultRAM)
	regs := am.Registers()
	require.Len(t, regs, 1)
	assert.Equal(t, "SCC1", regs[0].Name)
	assert.Equal(t, []uint32{0x9000}, regs[0].Writes)
	assert.Empty(t, regs[0].Reads)
}

func TestClassifyAccessesUnknownRegister(t *testing.T) {
	am := ClassifyAccesses(mustImage(t, 0x9000, []byte{0xB7, 0x17, 0xB7, 0x18}), gz60(t), DefaultRAM)
	_, ok := am.Register(0x17)
	assert.False(t, ok)
	assert.Len(t, am.Registers(), 1)

	am = ClassifyAccesses(mustImage(t, 0x9000, []byte{0xB7, 0x18}), nil, DefaultRAM)
	assert.Empty(t, am.Registers())
}

func TestClassifyAccessesRAM(t *testing.T) {
	data := []byte{
		0xC6, 0x02, 0xFA, // LDA $02FA
		0xC7, 0x02, 0xFA, // STA $02FA
		0xCF, 0x02, 0xFA, // STX $02FA
		0xCE, 0x01, 0x00, // LDX $0100
		0xCD, 0x01, 0x00, // JSR $0100, not data
		0xCC, 0x01, 0x00, // JMP $0100, not data
		0xC6, 0x00, 0x3F, // below RAM
		0xC6, 0x08, 0x40, // above RAM
		0xC6, 0x00, 0x40, // low bound
		0xC6, 0x08, 0x3F, // high bound
	}
	am := ClassifyAccesses(mustImage(t, 0x8000, data), nil, DefaultRAM)

	c, ok := am.RAM(0x02FA)
	require.True(t, ok)
	assert.Equal(t, Counter{Reads: 1, Writes: 2}, c)

	c, ok = am.RAM(0x0100)
	require.True(t, ok)
	assert.Equal(t, Counter{Reads: 1}, c)

	_, ok = am.RAM(0x003F)
	assert.False(t, ok)
	_, ok = am.RAM(0x0840)
	assert.False(t, ok)
	_, ok = am.RAM(0x0040)
	assert.True(t, ok)
	_, ok = am.RAM(0x083F)
	assert.True(t, ok)
	assert.Equal(t, 4, am.RAMLen())

	hot := am.Hotspots(2)
	require.Len(t, hot, 2)
	assert.Equal(t, uint32(0x02FA), hot[0].Address)
	assert.Equal(t, 3, hot[0].Total())
	assert.Equal(t, uint32(0x0040), hot[1].Address)
}

func TestFindStrings(t *testing.T) {
	data := []byte("\x00ABCD\x01xy\x02HELLO WORLD\xff~~~~")
	got := FindStrings(mustImage(t, 0x8000, data), 4)
	assert.Equal(t, []String{
		{Address: 0x8001, Value: "ABCD"},
		{Address: 0x8009, Value: "HELLO WORLD"},
		{Address: 0x8015, Value: "~~~~"},
	}, got)

	got = FindStrings(mustImage(t, 0x8000, []byte{0x41, 0x00, 0x42}), 0)
	assert.Len(t, got, 2)

	assert.True(t, String{Value: "DEADbeef"}.HexLike())
	assert.False(t, String{Value: "Hello"}.HexLike())
}

func TestFindWord(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{0x07, 0xE0, 0x00, 0xE0, 0x07, 0xE0})
	be, le := FindWord(img, 0x07E0)
	assert.Equal(t, []uint32{0x8000, 0x8004}, be)
	assert.Equal(t, []uint32{0x8003}, le)

	hits := FindWords(img, []uint16{0x07E0, 0x0500})
	require.Len(t, hits, 1)
	assert.Equal(t, uint16(0x07E0), hits[0].Value)
}

func TestVectors(t *testing.T) {
	data := make([]byte, 0x24)
	for i := range data {
		data[i] = 0xFF
	}
	data[0x22], data[0x23] = 0x80, 0x00 // RESET
	data[0x1E], data[0x1F] = 0x81, 0x23 // IRQ
	img := mustImage(t, 0xFFDC, data)

	vecs := Vectors(img)
	require.Len(t, vecs, 18)
	assert.Equal(t, Vector{Address: 0xFFDC, Name: "TIMEBASE", Handler: 0xFFFF}, vecs[0])
	assert.True(t, vecs[0].Erased())
	assert.Equal(t, Vector{Address: 0xFFFA, Name: "IRQ", Handler: 0x8123}, vecs[15])
	assert.Equal(t, Vector{Address: ResetVector, Name: "RESET", Handler: 0x8000}, vecs[17])

	assert.Empty(t, Vectors(mustImage(t, 0x8000, []byte{0x81})))
}

func TestGroupByRegion(t *testing.T) {
	regions := GroupByRegion([]uint32{0x9100, 0x8000, 0x8FFF, 0xC000}, 0)
	require.Len(t, regions, 3)
	assert.Equal(t, Region{Start: 0x8000, End: 0x9000, Addrs: []uint32{0x8000, 0x8FFF}}, regions[0])
	assert.Equal(t, uint32(0x9000), regions[1].Start)
	assert.Equal(t, uint32(0xC000), regions[2].Start)
}

func TestRun(t *testing.T) {
	data := []byte{
		0xB7, 0x18, // STA <SCC1
		0xCD, 0x80, 0x00, // JSR $8000
		0xC7, 0x02, 0xFA, // STA $02FA
		0x20, 0xF6, // BRA $8000
		'P', 'D', 'M', '1',
		0x07, 0xE8,
	}
	img := mustImage(t, 0x8000, data)

	res, err := Run(img, Options{Registers: gz60(t)})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x8000), res.Start)
	assert.Equal(t, img.End(), res.End)
	assert.Equal(t, img.Len(), res.Stream.Size())
	assert.Equal(t, []uint32{0x8000}, res.Subroutines)
	require.Len(t, res.Loops, 1)
	assert.Equal(t, uint32(8), res.Loops[0].Distance)
	assert.Empty(t, res.LargeLoops)
	assert.Len(t, res.Access.Registers(), 1)
	assert.Equal(t, 1, res.Access.RAMLen())
	assert.Equal(t, []String{{Address: 0x800A, Value: "PDM1"}}, res.Strings)
	require.Len(t, res.Constants, 1)
	assert.Equal(t, uint16(0x7E8), res.Constants[0].Value)

	again, err := Run(img, Options{Registers: gz60(t)})
	require.NoError(t, err)
	assert.Equal(t, res.Stream, again.Stream)
	assert.Equal(t, res.Access.Registers(), again.Access.Registers())
}

func TestRunRejectsInvertedRange(t *testing.T) {
	img := mustImage(t, 0x8000, []byte{0x81})
	_, err := Run(img, Options{RAM: &RAMRange{Low: 0x100, High: 0x50}})
	assert.ErrorIs(t, err, ErrBadRange)
}

func TestRunRAMRange(t *testing.T) {
	// STA $0000 ; STA $0040
	img := mustImage(t, 0x8000, []byte{0xC7, 0x00, 0x00, 0xC7, 0x00, 0x40})

	res, err := Run(img, Options{})
	require.NoError(t, err)
	_, ok := res.Access.RAM(0x0000)
	assert.False(t, ok)
	_, ok = res.Access.RAM(0x0040)
	assert.True(t, ok)

	res, err = Run(img, Options{RAM: &RAMRange{}})
	require.NoError(t, err)
	c, ok := res.Access.RAM(0x0000)
	require.True(t, ok)
	assert.Equal(t, 1, c.Writes)
	_, ok = res.Access.RAM(0x0040)
	assert.False(t, ok)
}
