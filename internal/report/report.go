// Package report turns analysis results into JSON and markdown summaries.
package report

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"hc08re/internal/analysis"
	"hc08re/internal/disasm"
)

// Source describes where the image came from.
type Source struct {
	Path      string
	Digest    string
	Format    string // "srec" or "binary"
	Header    string
	Entry     uint32
	HasEntry  bool
	Records   int
	Warnings  int
	Registers string
}

// Options tunes what Build keeps.
type Options struct {
	RegionSize uint32
	Hotspots   int
}

// Report is the JSON output structure. Addresses are rendered as hex
// strings so the output diffs cleanly between runs.
type Report struct {
	File         string         `json:"file"`
	Digest       string         `json:"digest"`
	Format       string         `json:"format"`
	Header       string         `json:"header,omitempty"`
	Entry        string         `json:"entry,omitempty"`
	Start        string         `json:"start"`
	End          string         `json:"end"`
	Size         int            `json:"size"`
	Registers    string         `json:"registers"`
	Warnings     int            `json:"warnings"`
	Instructions int            `json:"instructions"`
	Undecoded    int            `json:"undecoded"`
	Vectors      []VectorInfo   `json:"vectors"`
	Subroutines  []string       `json:"subroutines"`
	Regions      []RegionInfo   `json:"regions"`
	Loops        []LoopInfo     `json:"loops"`
	LargeLoops   []LoopInfo     `json:"large_loops"`
	IO           []RegisterInfo `json:"io"`
	RAM          []RAMInfo      `json:"ram"`
	Strings      []StringInfo   `json:"strings"`
	Constants    []ConstantInfo `json:"constants"`

	stream disasm.Stream
}

// VectorInfo is one interrupt vector in JSON output
type VectorInfo struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Handler string `json:"handler"`
}

// RegionInfo counts subroutines in one address region
type RegionInfo struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Subs  []string `json:"subroutines"`
}

// LoopInfo is a backward branch in JSON output
type LoopInfo struct {
	Branch   string `json:"branch"`
	Target   string `json:"target"`
	Distance uint32 `json:"distance"`
}

// RegisterInfo lists access sites of one I/O register
type RegisterInfo struct {
	Address string   `json:"address"`
	Name    string   `json:"name"`
	Reads   []string `json:"reads"`
	Writes  []string `json:"writes"`
}

// RAMInfo is one RAM hotspot
type RAMInfo struct {
	Address string `json:"address"`
	Reads   int    `json:"reads"`
	Writes  int    `json:"writes"`
}

// StringInfo is one embedded string
type StringInfo struct {
	Address string `json:"address"`
	Value   string `json:"value"`
}

// ConstantInfo lists where a 16-bit constant occurs
type ConstantInfo struct {
	Value        string   `json:"value"`
	BigEndian    []string `json:"big_endian"`
	LittleEndian []string `json:"little_endian"`
}

func hex16(v uint32) string { return fmt.Sprintf("0x%04X", v) }

func hexList(addrs []uint32) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, hex16(a))
	}
	return out
}

func loopInfos(loops []analysis.Loop) []LoopInfo {
	out := make([]LoopInfo, 0, len(loops))
	for _, l := range loops {
		out = append(out, LoopInfo{Branch: hex16(l.Branch), Target: hex16(l.Target), Distance: l.Distance})
	}
	return out
}

// Build assembles a report from an analysis result.
func Build(res *analysis.Result, src Source, opts Options) *Report {
	if opts.RegionSize == 0 {
		opts.RegionSize = analysis.DefaultRegionSize
	}
	if opts.Hotspots == 0 {
		opts.Hotspots = analysis.DefaultHotspots
	}

	r := &Report{
		File:         src.Path,
		Digest:       src.Digest,
		Format:       src.Format,
		Header:       src.Header,
		Start:        hex16(res.Start),
		End:          hex16(res.End),
		Size:         int(res.End - res.Start),
		Registers:    src.Registers,
		Warnings:     src.Warnings,
		Instructions: len(res.Stream),
		Undecoded:    res.Stream.Undecoded(),
		Subroutines:  hexList(res.Subroutines),
		Loops:        loopInfos(res.Loops),
		LargeLoops:   loopInfos(res.LargeLoops),
		Vectors:      []VectorInfo{},
		Regions:      []RegionInfo{},
		IO:           []RegisterInfo{},
		RAM:          []RAMInfo{},
		Strings:      []StringInfo{},
		Constants:    []ConstantInfo{},
		stream:       res.Stream,
	}
	if src.HasEntry {
		r.Entry = hex16(src.Entry)
	}

	for _, v := range res.Vectors {
		r.Vectors = append(r.Vectors, VectorInfo{Address: hex16(v.Address), Name: v.Name, Handler: hex16(uint32(v.Handler))})
	}
	for _, g := range analysis.GroupByRegion(res.Subroutines, opts.RegionSize) {
		r.Regions = append(r.Regions, RegionInfo{Start: hex16(g.Start), End: hex16(g.End - 1), Subs: hexList(g.Addrs)})
	}
	if res.Access != nil {
		for _, ra := range res.Access.Registers() {
			r.IO = append(r.IO, RegisterInfo{
				Address: hex16(ra.Address),
				Name:    ra.Name,
				Reads:   hexList(ra.Reads),
				Writes:  hexList(ra.Writes),
			})
		}
		for _, h := range res.Access.Hotspots(opts.Hotspots) {
			r.RAM = append(r.RAM, RAMInfo{Address: hex16(h.Address), Reads: h.Reads, Writes: h.Writes})
		}
	}
	for _, s := range res.Strings {
		r.Strings = append(r.Strings, StringInfo{Address: hex16(s.Address), Value: s.Value})
	}
	for _, c := range res.Constants {
		r.Constants = append(r.Constants, ConstantInfo{
			Value:        fmt.Sprintf("0x%03X", c.Value),
			BigEndian:    hexList(c.BigEndian),
			LittleEndian: hexList(c.LittleEndian),
		})
	}
	return r
}

// JSON renders the report with indentation.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// Listing returns the disassembly listing the report was built from.
func (r *Report) Listing() string { return r.stream.Listing() }

// Digest returns the hex sha256 of r.
func Digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate digest: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// DigestFile hashes the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Digest(f)
}

// codeBlock wraps lines in a fenced block.
func codeBlock(lines []string) string {
	return "```\n" + strings.Join(lines, "\n") + "\n```\n"
}
