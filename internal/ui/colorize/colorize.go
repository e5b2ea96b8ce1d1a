package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// NoColorEnv disables all coloring when set to any value.
const NoColorEnv = "HC08RE_NO_COLOR"

// HC08 lexes listing lines of the form
//
//	8000: A6 05          LDA      #$05
//
// as well as bare "MNEMONIC operand" text.
var HC08 = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "HC08",
		Aliases:   []string{"hc08", "hc08asm"},
		Filenames: []string{"*.lst"},
		MimeTypes: []string{"text/x-hc08"},
		EnsureNL:  true,
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `^([0-9A-F]{4,8})(:)([ \t]+)((?:[0-9A-F]{2} )*[0-9A-F]{2})([ \t]+)`,
					Type:    chroma.ByGroups(chroma.NameLabel, chroma.Punctuation, chroma.Text, chroma.CommentSpecial, chroma.Text),
					Mutator: chroma.Push("mnemonic")},
				{Pattern: `^[ \t]*;.*$`, Type: chroma.Comment, Mutator: nil},
				{Pattern: `\n`, Type: chroma.Text, Mutator: nil},
				{Pattern: `[ \t]+`, Type: chroma.Text, Mutator: nil},
				{Pattern: `[A-Z][A-Z0-9]*`, Type: chroma.Keyword, Mutator: chroma.Push("bare")},
				{Pattern: `.`, Type: chroma.Text, Mutator: nil},
			},
			"mnemonic": {
				{Pattern: `(DB)([ \t]*)`, Type: chroma.ByGroups(chroma.KeywordPseudo, chroma.Text), Mutator: chroma.Push("operand")},
				{Pattern: `([A-Z][A-Z0-9]*)([ \t]*)`, Type: chroma.ByGroups(chroma.Keyword, chroma.Text), Mutator: chroma.Push("operand")},
				{Pattern: `\n`, Type: chroma.Text, Mutator: chroma.Pop(1)},
			},
			// operand follows "mnemonic", so a newline unwinds both states
			"operand": {
				{Pattern: `\n`, Type: chroma.Text, Mutator: chroma.Pop(2)},
				chroma.Include("args"),
			},
			// bare is entered straight from root for lines without an address
			"bare": {
				{Pattern: `\n`, Type: chroma.Text, Mutator: chroma.Pop(1)},
				chroma.Include("args"),
			},
			"args": {
				{Pattern: `#`, Type: chroma.Operator, Mutator: nil},
				{Pattern: `\$[0-9A-F]+`, Type: chroma.LiteralNumberHex, Mutator: nil},
				{Pattern: `<`, Type: chroma.Operator, Mutator: nil},
				{Pattern: `,`, Type: chroma.Punctuation, Mutator: nil},
				{Pattern: `\b(X|SP)\b`, Type: chroma.NameBuiltin, Mutator: nil},
				{Pattern: `[A-Z_][A-Z0-9_]*`, Type: chroma.NameVariable, Mutator: nil},
				{Pattern: `;.*`, Type: chroma.Comment, Mutator: nil},
				{Pattern: `[ \t]+`, Type: chroma.Text, Mutator: nil},
				{Pattern: `.`, Type: chroma.Text, Mutator: nil},
			},
		}
	},
))

// Enabled reports whether output should be colored.
func Enabled() bool {
	return os.Getenv(NoColorEnv) == ""
}

// getListingStyle returns the listing style with fallbacks
func getListingStyle() *chroma.Style {
	candidates := []string{StyleName, "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Listing applies syntax highlighting to a disassembly listing. It returns
// the input unchanged when colors are disabled.
func Listing(code string) (string, error) {
	if !Enabled() {
		return code, nil
	}

	iterator, err := HC08.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getListingStyle(), iterator); err != nil {
		return code, err
	}

	out := buf.String()
	if !strings.HasSuffix(code, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, nil
}

// StripANSI removes ANSI escape sequences.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
		} else if inEscape {
			if r == 'm' {
				inEscape = false
			}
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
