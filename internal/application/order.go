package app

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"glyphscan/internal/domain/entity"
)

// GlyphOrder политика порядка символов в результате
type GlyphOrder string

const (
	// OrderReading сортирует области по X, затем по Y (слева направо).
	OrderReading GlyphOrder = "reading"
	// OrderDiscovery оставляет порядок, в котором сегментатор нашёл контуры.
	OrderDiscovery GlyphOrder = "discovery"
)

// ParseGlyphOrder разбирает название политики порядка.
func ParseGlyphOrder(s string) (GlyphOrder, error) {
	switch GlyphOrder(strings.ToLower(strings.TrimSpace(s))) {
	case OrderReading, "":
		return OrderReading, nil
	case OrderDiscovery:
		return OrderDiscovery, nil
	}
	return "", fmt.Errorf("unknown glyph order %q", s)
}

// Apply возвращает области в порядке политики, исходный срез не меняется.
func (o GlyphOrder) Apply(regions []entity.GlyphRegion) []entity.GlyphRegion {
	out := slices.Clone(regions)
	if o == OrderDiscovery {
		return out
	}
	slices.SortStableFunc(out, func(a, b entity.GlyphRegion) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return out
}
