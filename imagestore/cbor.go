// Package imagestore implements the "Image store" pipeline stage: a
// deterministic binary codec for [nfaimg.Image], so that two compiles of
// the same pattern text produce byte-identical output suitable for a
// compile cache keyed by pattern, or for golden-test fixtures.
package imagestore

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/anreg/core/nfaimg"
)

var encMode = mustCanonicalEncMode()

func mustCanonicalEncMode() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("imagestore: building canonical CBOR encoder: %v", err))
	}
	return mode
}

// Encode serializes an image to its canonical binary form. Encoding the
// same image twice, or encoding two images compiled from identical
// pattern text, always produces identical bytes.
func Encode(img *nfaimg.Image) ([]byte, error) {
	data, err := encMode.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("imagestore: encoding image: %w", err)
	}
	return data, nil
}

// Decode deserializes an image previously produced by Encode.
func Decode(data []byte) (*nfaimg.Image, error) {
	var img nfaimg.Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("imagestore: decoding image: %w", err)
	}
	return &img, nil
}
