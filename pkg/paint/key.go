package paint

import (
	"hash/fnv"
	"math"
	"strconv"
)

// FontSlant mirrors the style facet's font-slant attribute.
type FontSlant int

const (
	SlantUpright FontSlant = iota
	SlantItalic
	SlantOblique
)

// FontWeight mirrors the style facet's font-weight attribute (CSS-style
// 100-900 scale, carried as a plain int rather than an enum).
type FontWeight int

// FontWidth mirrors the style facet's font-width attribute.
type FontWidth int

// TextAlign mirrors the style facet's text-align attribute.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
	TextAlignJustify
)

// TextOverflow mirrors the style facet's text-overflow attribute.
type TextOverflow int

const (
	OverflowClip TextOverflow = iota
	OverflowEllipsis
)

// HeightBehavior mirrors the style facet's text-height-behavior attribute.
type HeightBehavior int

const (
	HeightBehaviorDisableAll HeightBehavior = iota
	HeightBehaviorHeightAsAscent
	HeightBehaviorDisableFirstAscent
	HeightBehaviorDisableLastDescent
)

// ParagraphCacheKey is the tuple of text-style fields and content that
// identifies a cached paragraph. Two keys that compare equal by Digest are
// expected to be structurally equal; Equal is kept alongside Digest to
// resolve an (astronomically unlikely) hash collision — Utilize never
// returns a paragraph for a mismatched key.
type ParagraphCacheKey struct {
	FontFamily string
	FontSize float64
	Slant FontSlant
	Weight FontWeight
	Width FontWidth
	LineHeight float64
	HasLineHeight bool
	WordSpacing float64
	LetterSpacing float64
	TextAlign TextAlign
	MaxLines int
	HasMaxLines bool
	Overflow TextOverflow
	Height HeightBehavior
	ColorRGB uint32

	// Text is the literal content when this key has no per-span content;
	// Spans holds per-span content hashes instead when it does. Exactly
	// one of the two is meaningful for a given key.
	Text  string
	Spans []uint64
}

// Equal reports whether k and other are structurally identical.
func (k ParagraphCacheKey) Equal(other ParagraphCacheKey) bool {
	if k.FontFamily != other.FontFamily || k.FontSize != other.FontSize ||
		k.Slant != other.Slant || k.Weight != other.Weight || k.Width != other.Width ||
		k.LineHeight != other.LineHeight || k.HasLineHeight != other.HasLineHeight ||
		k.WordSpacing != other.WordSpacing || k.LetterSpacing != other.LetterSpacing ||
		k.TextAlign != other.TextAlign || k.MaxLines != other.MaxLines ||
		k.HasMaxLines != other.HasMaxLines || k.Overflow != other.Overflow ||
		k.Height != other.Height || k.ColorRGB != other.ColorRGB || k.Text != other.Text {
		return false
	}
	if len(k.Spans) != len(other.Spans) {
		return false
	}
	for i, s := range k.Spans {
		if other.Spans[i] != s {
			return false
		}
	}
	return true
}

// Digest returns a deterministic, process-stable hash of k using a fixed
// hasher (FNV-1a over a canonical field encoding).
func (k ParagraphCacheKey) Digest() uint64 {
	h := fnv.New64a()
	writeStr := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	writeU64 := func(v uint64) {
		_, _ = h.Write([]byte(strconv.FormatUint(v, 36)))
		_, _ = h.Write([]byte{0})
	}
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	writeStr(k.FontFamily)
	writeF64(k.FontSize)
	writeU64(uint64(k.Slant))
	writeU64(uint64(k.Weight))
	writeU64(uint64(k.Width))
	writeF64(k.LineHeight)
	if k.HasLineHeight {
		writeU64(1)
	} else {
		writeU64(0)
	}
	writeF64(k.WordSpacing)
	writeF64(k.LetterSpacing)
	writeU64(uint64(k.TextAlign))
	writeU64(uint64(k.MaxLines))
	if k.HasMaxLines {
		writeU64(1)
	} else {
		writeU64(0)
	}
	writeU64(uint64(k.Overflow))
	writeU64(uint64(k.Height))
	writeU64(uint64(k.ColorRGB))
	writeStr(k.Text)
	writeU64(uint64(len(k.Spans)))
	for _, s := range k.Spans {
		writeU64(s)
	}
	return h.Sum64()
}
