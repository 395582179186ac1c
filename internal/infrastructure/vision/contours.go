package vision

import (
	"glyphscan/internal/domain/entity"
)

var (
	offsets4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// ExternalRegions возвращает ограничивающие прямоугольники внешних контуров маски.
//
// Чернила связываются по 8 соседям, фон — по 4. Пятно, лежащее целиком внутри дырки
// другого пятна, внешнего контура не имеет и пропускается. Порядок — по первому пикселю
// пятна при построчном обходе.
func ExternalRegions(mask *entity.BinaryMask) []entity.GlyphRegion {
	w, h := mask.Width, mask.Height
	if w == 0 || h == 0 {
		return nil
	}
	outside := outerBackground(mask)
	seen := make([]bool, w*h)
	var regions []entity.GlyphRegion
	var queue []int

	for start := range mask.Pix {
		if mask.Pix[start] == entity.Background || seen[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], start)
		minX, minY := w, h
		maxX, maxY := -1, -1
		external := false

		for qi := 0; qi < len(queue); qi++ {
			i := queue[qi]
			x, y := i%w, i/w
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)

			if !external && touchesOutside(mask, outside, x, y) {
				external = true
			}
			for _, d := range offsets8 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if seen[ni] || mask.Pix[ni] == entity.Background {
					continue
				}
				seen[ni] = true
				queue = append(queue, ni)
			}
		}

		if external {
			regions = append(regions, entity.GlyphRegion{
				X:      minX,
				Y:      minY,
				Width:  maxX - minX + 1,
				Height: maxY - minY + 1,
			})
		}
	}
	return regions
}

// outerBackground отмечает фон, связанный с краем изображения.
func outerBackground(mask *entity.BinaryMask) []bool {
	w, h := mask.Width, mask.Height
	outside := make([]bool, w*h)
	var queue []int
	push := func(x, y int) {
		i := y*w + x
		if outside[i] || mask.Pix[i] != entity.Background {
			return
		}
		outside[i] = true
		queue = append(queue, i)
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for qi := 0; qi < len(queue); qi++ {
		x, y := queue[qi]%w, queue[qi]/w
		for _, d := range offsets4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			push(nx, ny)
		}
	}
	return outside
}

// touchesOutside сообщает, что пиксель чернил лежит на краю или граничит с внешним фоном.
func touchesOutside(mask *entity.BinaryMask, outside []bool, x, y int) bool {
	w, h := mask.Width, mask.Height
	if x == 0 || y == 0 || x == w-1 || y == h-1 {
		return true
	}
	for _, d := range offsets4 {
		if outside[(y+d[1])*w+x+d[0]] {
			return true
		}
	}
	return false
}
