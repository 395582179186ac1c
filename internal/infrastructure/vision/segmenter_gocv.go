//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// Segmenter сегментатор на OpenCV.
type Segmenter struct {
	params Params
}

// NewSegmenter создаёт сегментатор с заданными параметрами.
func NewSegmenter(params Params) *Segmenter {
	return &Segmenter{params: params}
}

// Backend возвращает название реализации.
func (s *Segmenter) Backend() string {
	return "gocv"
}

// Binarize декодирует изображение, переводит его в серый и применяет инвертированный порог.
func (s *Segmenter) Binarize(imageData []byte) (*entity.BinaryMask, error) {
	if len(imageData) > 0 {
		if err := checkImageSize(imageData, s.params.MaxPixels); err != nil {
			return nil, err
		}
	}
	mat, err := decodeToMat(imageData)
	defer mat.Close()
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "binarize", err)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(s.params.Threshold), 255, gocv.ThresholdBinaryInv)

	return matToMask(binary), nil
}

// Locate наращивает чернила квадратным ядром и ищет только внешние контуры.
func (s *Segmenter) Locate(mask *entity.BinaryMask) ([]entity.GlyphRegion, error) {
	if mask.Width == 0 || mask.Height == 0 {
		return nil, nil
	}
	src, err := maskToMat(mask)
	defer src.Close()
	if err != nil {
		return nil, err
	}

	dilated := gocv.NewMat()
	defer dilated.Close()
	src.CopyTo(&dilated)

	if s.params.KernelSize > 1 && s.params.Iterations > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(s.params.KernelSize, s.params.KernelSize))
		defer kernel.Close()
		// Граница по умолчанию не наращивает чернила снаружи изображения.
		for i := 0; i < s.params.Iterations; i++ {
			gocv.Dilate(dilated, &dilated, kernel)
		}
	}

	contours := gocv.FindContours(dilated, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]entity.GlyphRegion, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		regions = append(regions, entity.RegionFromRect(rect))
	}
	return regions, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), errors.New("empty image data")
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// matToMask копирует одноканальную 8-битную матрицу в маску.
func matToMask(mat gocv.Mat) *entity.BinaryMask {
	return &entity.BinaryMask{
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Pix:    mat.ToBytes(),
	}
}

// maskToMat копирует маску в матрицу CV_8U.
func maskToMat(mask *entity.BinaryMask) (gocv.Mat, error) {
	data := make([]byte, len(mask.Pix))
	copy(data, mask.Pix)
	mat, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8U, data)
	if err != nil {
		return gocv.NewMat(), entity.NewError(entity.KindDecode, "mask to mat", err)
	}
	return mat, nil
}

// Проверка реализации интерфейса
var _ port.GlyphSegmenter = (*Segmenter)(nil)
