// Command typfshape shapes and renders a line of text with the typf
// pipeline, printing capability information useful when
// diagnosing a shaper/renderer/font combination.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/fontlaborg/typf"
	"github.com/fontlaborg/typf/export"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
	"github.com/fontlaborg/typf/raster"
	"github.com/fontlaborg/typf/shaping"
	"github.com/fontlaborg/typf/unicodedata"
)

func main() {
	var (
		fontPath = flag.String("font", "", "path to a TTF/OTF font file")
		text     = flag.String("text", "Hello", "text to shape and render")
		size     = flag.Float64("size", 48, "font size in points")
		width    = flag.Int("width", 800, "bitmap width")
		height   = flag.Int("height", 200, "bitmap height")
		shaper   = flag.String("shaper", "opentype", "shaper: trivial, opentype, unicode")
		output   = flag.String("output", "typfshape.png", "output file")
		color    = flag.Bool("color", false, "paint COLR color layers when the font has them")
	)
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("typfshape: -font is required")
	}

	data, err := os.ReadFile(*fontPath)
	if err != nil {
		log.Fatalf("typfshape: read font: %v", err)
	}
	handle, err := font.Open(data)
	if err != nil {
		log.Fatalf("typfshape: open font: %v", err)
	}
	defer handle.Release()

	face, err := font.NewFace(handle, *size)
	if err != nil {
		log.Fatalf("typfshape: new face: %v", err)
	}

	s := selectShaper(*shaper)
	printCapabilities(s)

	p := typf.New(s, selectRenderer(*color, handle), export.FormatPNG)
	renderParams := raster.DefaultParams().WithSize(*width, *height)
	renderParams.OriginX, renderParams.OriginY = 10, float64(*height)*0.7

	out, err := p.Process(*text, face, shaping.Params{Size: *size}, renderParams)
	if err != nil {
		log.Fatalf("typfshape: process: %v", err)
	}

	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("typfshape: write output: %v", err)
	}
	log.Printf("typfshape: wrote %s (%dx%d)", *output, *width, *height)
}

func selectRenderer(color bool, handle *font.Handle) raster.Renderer {
	if !color {
		return raster.NewBitmapRenderer()
	}
	pref, err := glyphsource.NewPreference([]glyphsource.SourceKind{glyphsource.ColorV1, glyphsource.ColorV0}, nil)
	if err != nil {
		log.Fatalf("typfshape: color preference: %v", err)
	}
	return raster.NewColorBitmapRenderer(raster.NewFontColorSource(handle), pref)
}

func selectShaper(name string) shaping.Shaper {
	switch name {
	case "trivial":
		return &shaping.TrivialShaper{}
	case "unicode":
		return shaping.NewUnicodePreprocessedShaper(shaping.NewOpenTypeShaper())
	default:
		return shaping.NewOpenTypeShaper()
	}
}

func printCapabilities(s shaping.Shaper) {
	scripts := []unicodedata.Script{unicodedata.ScriptLatin, unicodedata.ScriptArabic, unicodedata.ScriptHan}
	for _, sc := range scripts {
		log.Printf("typfshape: supports_script(%s) = %v", sc, s.SupportsScript(sc))
	}
	for _, feat := range []string{"liga", "kern", "smcp"} {
		log.Printf("typfshape: supports_feature(%s) = %v", feat, s.SupportsFeature(feat))
	}
}
