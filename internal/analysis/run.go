package analysis

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"hc08re/internal/disasm"
	"hc08re/internal/hc08"
	"hc08re/internal/image"
)

// ErrBadRange is returned by Run when the RAM range is inverted.
var ErrBadRange = errors.New("analysis: RAM range low is above high")

// Options configures Run. The zero value uses the package defaults and no
// register table.
type Options struct {
	Registers       hc08.Resolver
	RAM             *RAMRange // nil selects DefaultRAM
	MinStringLength int
	DecodeLimit     int
	LargeLoop       uint32
	Constants       []uint16
}

// Result collects the output of every pass.
type Result struct {
	Start       uint32
	End         uint32
	Stream      disasm.Stream
	Subroutines []uint32
	Loops       []Loop
	LargeLoops  []Loop
	Access      *AccessMap
	Strings     []String
	Vectors     []Vector
	Constants   []WordHits
}

func (o Options) withDefaults() Options {
	if o.RAM == nil {
		ram := DefaultRAM
		o.RAM = &ram
	}
	if o.MinStringLength == 0 {
		o.MinStringLength = DefaultMinStringLength
	}
	if o.LargeLoop == 0 {
		o.LargeLoop = DefaultLargeLoop
	}
	if o.Constants == nil {
		o.Constants = DefaultConstants
	}
	return o
}

// pass fills its own fields of a Result.
type pass func(img *image.Image, opts Options, res *Result) error

var passes = []pass{
	func(img *image.Image, opts Options, res *Result) error {
		res.Stream = disasm.DecodeAll(img, disasm.Options{Limit: opts.DecodeLimit, Registers: opts.Registers})
		return nil
	},
	func(img *image.Image, _ Options, res *Result) error {
		res.Subroutines = FindSubroutines(img)
		return nil
	},
	func(img *image.Image, opts Options, res *Result) error {
		res.Loops = FindLoops(img)
		res.LargeLoops = LargeLoops(res.Loops, opts.LargeLoop)
		return nil
	},
	func(img *image.Image, opts Options, res *Result) error {
		res.Access = ClassifyAccesses(img, opts.Registers, *opts.RAM)
		return nil
	},
	func(img *image.Image, opts Options, res *Result) error {
		res.Strings = FindStrings(img, opts.MinStringLength)
		return nil
	},
	func(img *image.Image, _ Options, res *Result) error {
		res.Vectors = Vectors(img)
		return nil
	},
	func(img *image.Image, opts Options, res *Result) error {
		res.Constants = FindWords(img, opts.Constants)
		return nil
	},
}

// Run executes every pass over img concurrently. Passes share nothing but
// the read-only image, so the result does not depend on scheduling.
func Run(img *image.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("analysis: %w", image.ErrEmpty)
	}
	opts = opts.withDefaults()
	if opts.RAM.Low > opts.RAM.High {
		return nil, fmt.Errorf("%w: 0x%04X > 0x%04X", ErrBadRange, opts.RAM.Low, opts.RAM.High)
	}

	res := &Result{Start: img.Start(), End: img.End()}
	var g errgroup.Group
	for _, p := range passes {
		g.Go(func() error { return p(img, opts, res) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
