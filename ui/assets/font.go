package assets

import (
	"fmt"
	"sync"

	"gioui.org/font/opentype"
	"gioui.org/text"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	once       sync.Once
	collection []text.FontFace
)

// FontCollection registers the fonts to used in the app
func FontCollection() []text.FontFace {
	once.Do(func() {
		register(text.Font{}, goregular.TTF)
		register(text.Font{Style: text.Italic}, goitalic.TTF)
		register(text.Font{Weight: text.Bold}, gobold.TTF)
		register(text.Font{Style: text.Italic, Weight: text.Bold}, gobolditalic.TTF)
		register(text.Font{Weight: text.Medium}, gomedium.TTF)
		register(text.Font{Weight: text.Medium, Style: text.Italic}, gomediumitalic.TTF)
		// Addresses and hashes are shown in the monospace variant.
		register(text.Font{Variant: "Mono"}, gomono.TTF)
		// Ensure that any outside appends will not reuse the backing store.
		n := len(collection)
		collection = collection[:n:n]
	})
	return collection
}

func register(fnt text.Font, fontByte []byte) {
	face, err := opentype.Parse(fontByte)
	if err != nil {
		panic(fmt.Errorf("failed to parse font: %v", err))
	}
	fnt.Typeface = "Go"
	collection = append(collection, text.FontFace{Font: fnt, Face: face})
}
