// Package srec loads Motorola S-record text into a memory image.
//
// Data records (S1, S2, S3) are overlaid onto a dense image that spans the
// lowest to highest written address. Bytes never written read as
// image.Erased. Malformed lines are logged and skipped; only unreadable
// input or a file without any data is fatal. Checksums are carried through
// but never checked.
package srec

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"hc08re/internal/image"
)

var (
	// ErrEmptyInput is returned when the input has no lines at all.
	ErrEmptyInput = errors.New("srec: empty input")
	// ErrNoData is returned when no S1/S2/S3 record was found.
	ErrNoData = errors.New("srec: no data records")
	// ErrTooLarge is returned when the written addresses span more than MaxSpan.
	ErrTooLarge = errors.New("srec: image span too large")
)

// MaxSpan bounds the dense image built from the lowest to highest address.
const MaxSpan = 16 << 20

// File is the result of a load.
type File struct {
	Image    *image.Image
	Header   string // S0 payload
	Entry    uint32 // S7/S8/S9 address
	HasEntry bool
	Records  int // data records applied
	Bytes    int // distinct addresses written
	Warnings int // lines skipped
}

// Loader parses S-record streams. The zero value is not usable; call New.
type Loader struct {
	logger *log.Logger
}

// New returns a loader that reports skipped lines to logger. A nil logger
// discards them.
func New(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

// LoadFile opens and parses path.
func (l *Loader) LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open s-record file: %w", err)
	}
	defer f.Close()

	file, err := l.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// record is one decoded line.
type record struct {
	kind    byte
	addr    uint32
	payload []byte
}

// addrLen is the address width of each record type.
var addrLen = map[byte]int{
	'0': 2, '1': 2, '2': 3, '3': 4,
	'5': 2, '6': 3,
	'7': 4, '8': 3, '9': 2,
}

// Parse reads every line of r.
func (l *Loader) Parse(r io.Reader) (*File, error) {
	var (
		file   File
		memory = make(map[uint32]byte)
		lines  int
		low    uint32
		high   uint32
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1<<20)
	for lineNo := 1; sc.Scan(); lineNo++ {
		lines++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			file.Warnings++
			l.logger.Warn("skipping line", "line", lineNo, "err", err, "text", preview(line))
			continue
		}

		switch rec.kind {
		case '0':
			file.Header = printable(rec.payload)
			l.logger.Info("header", "text", file.Header)
		case '1', '2', '3':
			file.Records++
			for i, b := range rec.payload {
				addr := rec.addr + uint32(i)
				if len(memory) == 0 {
					low, high = addr, addr
				}
				memory[addr] = b
				low = min(low, addr)
				high = max(high, addr)
			}
		case '5', '6':
			l.logger.Debug("record count", "type", "S"+string(rec.kind), "count", rec.addr)
		case '7', '8', '9':
			file.Entry = rec.addr
			file.HasEntry = true
			l.logger.Info("entry point", "addr", fmt.Sprintf("0x%04X", rec.addr))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read s-records: %w", err)
	}
	if lines == 0 {
		return nil, ErrEmptyInput
	}
	if len(memory) == 0 {
		return nil, ErrNoData
	}

	span := uint64(high) - uint64(low) + 1
	if span > MaxSpan {
		return nil, fmt.Errorf("0x%X..0x%X: %w", low, high, ErrTooLarge)
	}
	data := make([]byte, span)
	for i := range data {
		data[i] = image.Erased
	}
	for addr, b := range memory {
		data[addr-low] = b
	}
	img, err := image.New(low, data)
	if err != nil {
		return nil, fmt.Errorf("build image: %w", err)
	}
	file.Image = img
	file.Bytes = len(memory)

	l.logger.Debug("loaded",
		"records", file.Records,
		"start", fmt.Sprintf("0x%04X", img.Start()),
		"end", fmt.Sprintf("0x%04X", img.End()),
		"warnings", file.Warnings)
	return &file, nil
}

func parseLine(line string) (record, error) {
	if line[0] != 'S' && line[0] != 's' {
		return record{}, errors.New("not an s-record")
	}
	if len(line) < 4 {
		return record{}, errors.New("line too short")
	}
	kind := line[1]
	alen, ok := addrLen[kind]
	if !ok {
		return record{}, fmt.Errorf("unsupported record type S%c", kind)
	}

	raw, err := hex.DecodeString(line[2:])
	if err != nil {
		return record{}, fmt.Errorf("bad hex: %w", err)
	}
	count := int(raw[0])
	if count != len(raw)-1 {
		return record{}, fmt.Errorf("byte count %d does not match %d bytes on line", count, len(raw)-1)
	}
	// count covers address, payload and the checksum byte
	if count < alen+1 {
		return record{}, fmt.Errorf("byte count %d too small for S%c", count, kind)
	}

	var addr uint32
	for _, b := range raw[1 : 1+alen] {
		addr = addr<<8 | uint32(b)
	}
	payload := raw[1+alen : len(raw)-1]
	if kind >= '1' && kind <= '3' && uint64(addr)+uint64(len(payload)) > 1<<(8*alen) {
		return record{}, fmt.Errorf("payload runs past the S%c address range", kind)
	}
	return record{
		kind:    kind,
		addr:    addr,
		payload: payload,
	}, nil
}

func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else if c != 0 {
			sb.WriteRune('�')
		}
	}
	return sb.String()
}

func preview(line string) string {
	if len(line) > 20 {
		return line[:20]
	}
	return line
}
