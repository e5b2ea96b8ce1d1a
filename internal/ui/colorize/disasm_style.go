package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// StyleName is the registered name of ListingDark.
const StyleName = "hc08-dark"

// ListingDark colors listing lines: gray addresses and raw bytes, white
// mnemonics, teal registers, pink literals.
var ListingDark = styles.Register(chroma.MustNewStyle(StyleName, chroma.StyleEntries{
	chroma.Text:           "#FFFFFF",
	chroma.Background:     "bg:#1e1e1e",
	chroma.Comment:        "#EBC2ED",
	chroma.CommentSpecial: "#4F4F4F", // raw bytes

	chroma.Keyword:       "#FFFFFF",
	chroma.KeywordPseudo: "#FF8700", // DB
	chroma.NameBuiltin:   "#7C9C9D", // X, SP
	chroma.NameVariable:  "#7C9C9D", // named registers

	chroma.LiteralNumberHex: "#FF5F87",

	chroma.NameLabel:   "#4F4F4F", // address column
	chroma.Operator:    "#FFFFFF",
	chroma.Punctuation: "#FFFFFF",
}))
