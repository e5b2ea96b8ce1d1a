package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"hc08re/internal/analysis"
)

// perRegion caps how many subroutines the summary lists per region.
const perRegion = 10

type ioGroup struct {
	title    string
	prefixes []string
}

// ioGroups orders the register summary by peripheral, matched on name
// prefix. The last group catches everything else.
var ioGroups = []ioGroup{
	{"Ports", []string{"PORT", "DDR", "PT"}},
	{"Timers", []string{"T1", "T2", "TB"}},
	{"SCI", []string{"SC"}},
	{"SPI", []string{"SP"}},
	{"ADC", []string{"AD"}},
	{"Config", []string{"CONFIG"}},
	{"MSCAN", []string{"C"}},
	{"Other", nil},
}

func groupOf(name string) string {
	for _, g := range ioGroups {
		for _, p := range g.prefixes {
			if strings.HasPrefix(name, p) {
				return g.title
			}
		}
	}
	return "Other"
}

type section struct {
	name   string
	render func(r *Report, sb *strings.Builder)
}

// sections are rendered in this order by Markdown.
var sections = []section{
	{"vectors", (*Report).writeVectors},
	{"subroutines", (*Report).writeSubroutines},
	{"io", (*Report).writeIO},
	{"ram", (*Report).writeRAM},
	{"loops", (*Report).writeLoops},
	{"strings", (*Report).writeStrings},
	{"constants", (*Report).writeConstants},
	{"disasm", (*Report).writeDisassembly},
}

// Sections lists the names accepted by Section.
func Sections() []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.name
	}
	return names
}

// Section renders a single named section without the file header.
func (r *Report) Section(name string) (string, bool) {
	for _, s := range sections {
		if s.name == name {
			var sb strings.Builder
			s.render(r, &sb)
			return strings.TrimPrefix(sb.String(), "\n"), true
		}
	}
	return "", false
}

// Markdown renders the summary. With full set the disassembly listing is
// appended.
func (r *Report) Markdown(full bool) string {
	var sb strings.Builder
	sb.WriteString("# hc08re\n\n")
	sb.WriteString(codeBlock(r.HeaderLines()))
	for _, s := range sections {
		if s.name == "disasm" && !full {
			continue
		}
		s.render(r, &sb)
	}
	return sb.String()
}

// HeaderLines returns the "; "-prefixed file summary shown at the top of
// every rendering.
func (r *Report) HeaderLines() []string {
	var lines []string
	if dir := filepath.Dir(r.File); dir != "." && dir != "" {
		lines = append(lines, fmt.Sprintf("; %s/", dir))
	}
	lines = append(lines,
		fmt.Sprintf("; %s (%s)", filepath.Base(r.File), r.Format),
		fmt.Sprintf("; %s", r.Digest),
		"",
		fmt.Sprintf("; range %s-%s (%d bytes)", r.Start, r.End, r.Size),
	)
	if r.Header != "" {
		lines = append(lines, fmt.Sprintf("; header %q", r.Header))
	}
	if r.Entry != "" {
		lines = append(lines, fmt.Sprintf("; entry %s", r.Entry))
	}
	lines = append(lines,
		fmt.Sprintf("; %d instructions, %d undecoded bytes", r.Instructions, r.Undecoded),
		fmt.Sprintf("; registers %s", r.Registers),
	)
	if r.Warnings > 0 {
		lines = append(lines, fmt.Sprintf("; %d lines skipped", r.Warnings))
	}
	return lines
}

func (r *Report) writeVectors(sb *strings.Builder) {
	if len(r.Vectors) == 0 {
		return
	}
	sb.WriteString("\n## Vectors\n\n| Slot | Vector | Handler |\n|---|---|---|\n")
	for _, v := range r.Vectors {
		handler := v.Handler
		if handler == "0xFFFF" {
			handler = "unused"
		}
		fmt.Fprintf(sb, "| %s | %s | %s |\n", v.Address, v.Name, handler)
	}
}

func (r *Report) writeSubroutines(sb *strings.Builder) {
	fmt.Fprintf(sb, "\n## Subroutines\n\n%d entry points\n", len(r.Subroutines))
	for _, g := range r.Regions {
		fmt.Fprintf(sb, "\n**%s-%s**: %d functions\n\n", g.Start, g.End, len(g.Subs))
		for i, a := range g.Subs {
			if i == perRegion {
				fmt.Fprintf(sb, "- ... and %d more\n", len(g.Subs)-perRegion)
				break
			}
			fmt.Fprintf(sb, "- sub_%s\n", strings.TrimPrefix(a, "0x"))
		}
	}
}

func (r *Report) writeIO(sb *strings.Builder) {
	if len(r.IO) == 0 {
		return
	}
	sb.WriteString("\n## I/O registers\n")
	for _, g := range ioGroups {
		var rows []string
		for _, reg := range r.IO {
			if groupOf(reg.Name) == g.title {
				rows = append(rows, fmt.Sprintf("| %s | %s | %d | %d |", reg.Name, reg.Address, len(reg.Reads), len(reg.Writes)))
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(sb, "\n### %s\n\n| Register | Address | Reads | Writes |\n|---|---|---|---|\n", g.title)
		sb.WriteString(strings.Join(rows, "\n"))
		sb.WriteString("\n")
	}
}

func (r *Report) writeRAM(sb *strings.Builder) {
	if len(r.RAM) == 0 {
		return
	}
	sb.WriteString("\n## RAM hotspots\n\n| Address | Reads | Writes | Total |\n|---|---|---|---|\n")
	for _, h := range r.RAM {
		fmt.Fprintf(sb, "| %s | %d | %d | %d |\n", h.Address, h.Reads, h.Writes, h.Reads+h.Writes)
	}
}

func (r *Report) writeLoops(sb *strings.Builder) {
	fmt.Fprintf(sb, "\n## Loops\n\n%d backward branches\n", len(r.Loops))
	if len(r.LargeLoops) == 0 {
		return
	}
	sb.WriteString("\nLarge loops (likely main loop or state machines):\n\n")
	for i, l := range r.LargeLoops {
		if i == perRegion {
			break
		}
		fmt.Fprintf(sb, "- %s -> %s (back %d bytes)\n", l.Branch, l.Target, l.Distance)
	}
}

func (r *Report) writeStrings(sb *strings.Builder) {
	if len(r.Strings) == 0 {
		return
	}
	sb.WriteString("\n## Strings\n\n")
	for _, s := range r.Strings {
		if (analysis.String{Value: s.Value}).HexLike() {
			continue
		}
		fmt.Fprintf(sb, "- `%s` %q\n", s.Address, s.Value)
	}
}

func (r *Report) writeConstants(sb *strings.Builder) {
	if len(r.Constants) == 0 {
		return
	}
	sb.WriteString("\n## Constants\n\n")
	for _, c := range r.Constants {
		fmt.Fprintf(sb, "- %s", c.Value)
		if len(c.BigEndian) > 0 {
			fmt.Fprintf(sb, " big-endian at %s", strings.Join(c.BigEndian, ", "))
		}
		if len(c.LittleEndian) > 0 {
			fmt.Fprintf(sb, " little-endian at %s", strings.Join(c.LittleEndian, ", "))
		}
		sb.WriteString("\n")
	}
}

func (r *Report) writeDisassembly(sb *strings.Builder) {
	sb.WriteString("\n## Disassembly\n\n")
	sb.WriteString(codeBlock(strings.Split(strings.TrimSuffix(r.Listing(), "\n"), "\n")))
}
