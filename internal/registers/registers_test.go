package registers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLookup(t *testing.T) {
	tbl, ok := Builtin(DefaultTable)
	require.True(t, ok)

	tests := []struct {
		addr uint32
		name string
		ok   bool
	}{
		{0x18, "SCC1", true},
		{0x00, "PORTA", true},
		{0xFE01, "CONFIG1", true},
		{0x17, "", false},
		{0x0800, "", false},
	}
	for _, tt := range tests {
		name, ok := tbl.Lookup(tt.addr)
		assert.Equal(t, tt.ok, ok, "addr 0x%X", tt.addr)
		assert.Equal(t, tt.name, name, "addr 0x%X", tt.addr)
	}
}

func TestNilTableLookup(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Lookup(0x18)
	assert.False(t, ok)
}

func TestRegistersSorted(t *testing.T) {
	tbl := New("t", map[uint32]string{0x30: "C", 0x01: "A", 0x10: "B"})
	regs := tbl.Registers()
	require.Len(t, regs, 3)
	assert.Equal(t, []Register{{0x01, "A"}, {0x10, "B"}, {0x30, "C"}}, regs)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	content := `name: board
registers:
  - {address: 0x18, name: UARTC}
  - address: 0xFE00
    name: CFG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "board", tbl.Name())
	assert.Equal(t, 2, tbl.Len())

	name, ok := tbl.Lookup(0x18)
	assert.True(t, ok)
	assert.Equal(t, "UARTC", name)
}

func TestLoadFileRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	content := "registers:\n  - {address: 1, name: A}\n  - {address: 1, name: B}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("no-such-part")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestResolveDefault(t *testing.T) {
	tbl, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, tbl.Name())
}
