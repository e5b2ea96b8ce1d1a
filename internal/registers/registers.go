// Package registers names the memory-mapped I/O registers of a target part.
package registers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTable is the builtin used when nothing else is configured.
const DefaultTable = "mc68hc908gz60"

// ErrUnknownTable is returned when a table name is neither builtin nor a file.
var ErrUnknownTable = errors.New("unknown register table")

// Table maps addresses to register names. A Table is read-only once built.
type Table struct {
	name  string
	regs  map[uint32]string
	addrs []uint32
}

// Register is a single named address.
type Register struct {
	Address uint32 `yaml:"address" json:"address"`
	Name    string `yaml:"name" json:"name"`
}

// New builds a table from an address map. The map is copied.
func New(name string, regs map[uint32]string) *Table {
	t := &Table{name: name, regs: make(map[uint32]string, len(regs))}
	for addr, reg := range regs {
		t.regs[addr] = reg
		t.addrs = append(t.addrs, addr)
	}
	sort.Slice(t.addrs, func(i, j int) bool { return t.addrs[i] < t.addrs[j] })
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of registers.
func (t *Table) Len() int { return len(t.regs) }

// Lookup returns the register name at addr.
func (t *Table) Lookup(addr uint32) (string, bool) {
	if t == nil {
		return "", false
	}
	name, ok := t.regs[addr]
	return name, ok
}

// Registers returns every register ordered by address.
func (t *Table) Registers() []Register {
	out := make([]Register, 0, len(t.addrs))
	for _, addr := range t.addrs {
		out = append(out, Register{Address: addr, Name: t.regs[addr]})
	}
	return out
}

// Builtin returns a compiled-in table by name.
func Builtin(name string) (*Table, bool) {
	regs, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return New(strings.ToLower(name), regs), true
}

// Names lists the builtin table names.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type tableFile struct {
	Name      string     `yaml:"name"`
	Registers []Register `yaml:"registers"`
}

// LoadFile reads a YAML register table:
//
//	name: my-board
//	registers:
//	  - {address: 0x18, name: SCC1}
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read register table: %w", err)
	}
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse register table %s: %w", path, err)
	}
	if len(tf.Registers) == 0 {
		return nil, fmt.Errorf("register table %s: no registers", path)
	}
	regs := make(map[uint32]string, len(tf.Registers))
	for i, r := range tf.Registers {
		if r.Name == "" {
			return nil, fmt.Errorf("register table %s: entry %d has no name", path, i)
		}
		if prev, dup := regs[r.Address]; dup {
			return nil, fmt.Errorf("register table %s: address 0x%04X named both %s and %s", path, r.Address, prev, r.Name)
		}
		regs[r.Address] = r.Name
	}
	name := tf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return New(name, regs), nil
}

// Resolve returns the builtin table called name, or loads name as a YAML
// file. An empty name selects DefaultTable.
func Resolve(name string) (*Table, error) {
	if name == "" {
		name = DefaultTable
	}
	if t, ok := Builtin(name); ok {
		return t, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %s (builtin: %s)", ErrUnknownTable, name, strings.Join(Names(), ", "))
	}
	return LoadFile(name)
}
