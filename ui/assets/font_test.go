package assets

import "testing"

func TestFontCollection(t *testing.T) {
	fonts := FontCollection()
	if len(fonts) != 7 {
		t.Errorf("(%v), expected (%v), got (%v)", "fonts", 7, len(fonts))
	}
	if again := FontCollection(); &again[0] != &fonts[0] {
		t.Errorf("(%v), expected the collection to be registered once", "fonts")
	}
}
