// Package match is the handoff point to the (out-of-scope) execution
// engine: a PikeVM, DFA, or similar matcher that walks an [nfaimg.Image]
// against input text. It exists to demonstrate the contract a matcher
// would consume, not to implement one.
package match

import (
	"errors"

	"github.com/anreg/core/nfaimg"
)

// ErrNotImplemented is returned by every Instance.Exec call. The matcher
// itself is out of scope for this repo.
var ErrNotImplemented = errors.New("match: execution engine not implemented")

// Processor owns a compiled image and hands out instances to run it
// against input text.
type Processor struct {
	image *nfaimg.Image
}

// NewProcessor wraps an already-compiled image for matching.
func NewProcessor(image *nfaimg.Image) *Processor {
	return &Processor{image: image}
}

// NewInstance prepares a matching run over chars. chars is kept by
// reference; the caller must not mutate it while the instance is in use.
func (p *Processor) NewInstance(chars []rune) *Instance {
	return &Instance{
		image: p.image,
		chars: chars,
	}
}

// Instance is one matching attempt against a fixed input, starting at a
// caller-chosen offset.
type Instance struct {
	image *nfaimg.Image
	chars []rune
}

// CaptureRange is the [start, end) rune-offset span of one capture group.
type CaptureRange struct {
	Start int
	End   int
}

// Exec attempts a match beginning at the given rune offset. The walk
// over image.StateSetAt(0) that would produce capture ranges is not
// implemented here.
func (in *Instance) Exec(start int) ([]CaptureRange, error) {
	return nil, ErrNotImplemented
}
