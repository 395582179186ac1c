package vision

import (
	"glyphscan/internal/domain/entity"
)

// Dilate наращивает чернила квадратным ядром kernelSize x kernelSize iterations раз.
// Пиксели за границей маски считаются фоном и не наращивают чернила.
//
// Повторная дилатация прямоугольным ядром равна одной дилатации ядром большего размера,
// поэтому проход разделяется на горизонтальный и вертикальный максимум по окну.
func Dilate(mask *entity.BinaryMask, kernelSize, iterations int) *entity.BinaryMask {
	if kernelSize <= 1 || iterations <= 0 {
		return mask.Clone()
	}
	anchor := kernelSize / 2
	before := anchor * iterations
	after := (kernelSize - 1 - anchor) * iterations

	w, h := mask.Width, mask.Height
	horizontal := entity.NewBinaryMask(w, h)
	prefix := make([]int, max(w, h)+1)

	for y := 0; y < h; y++ {
		row := mask.Pix[y*w : (y+1)*w]
		for x, v := range row {
			prefix[x+1] = prefix[x] + inkCount(v)
		}
		for x := 0; x < w; x++ {
			lo, hi := max(0, x-before), min(w, x+after+1)
			if prefix[hi]-prefix[lo] > 0 {
				horizontal.Pix[y*w+x] = entity.Foreground
			}
		}
	}

	out := entity.NewBinaryMask(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + inkCount(horizontal.Pix[y*w+x])
		}
		for y := 0; y < h; y++ {
			lo, hi := max(0, y-before), min(h, y+after+1)
			if prefix[hi]-prefix[lo] > 0 {
				out.Pix[y*w+x] = entity.Foreground
			}
		}
	}
	return out
}

func inkCount(v uint8) int {
	if v != entity.Background {
		return 1
	}
	return 0
}
