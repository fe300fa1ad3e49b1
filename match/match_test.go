package match

import (
	"errors"
	"testing"

	"github.com/anreg/core/nfaimg"
)

func TestExecReturnsNotImplemented(t *testing.T) {
	img := &nfaimg.Image{StateSets: []nfaimg.StateSet{{}}}
	p := NewProcessor(img)
	in := p.NewInstance([]rune("abc"))

	ranges, err := in.Exec(0)
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Exec: got error %v, want ErrNotImplemented", err)
	}
	if ranges != nil {
		t.Errorf("Exec: got ranges %v, want nil", ranges)
	}
}
