package vision

// Params параметры сегментации слова на символы.
// Значения по умолчанию подобраны эмпирически и одинаковы для всех письменностей.
type Params struct {
	Threshold  uint8 // порог бинаризации: светлее — фон, темнее или равно — чернила
	KernelSize int   // сторона квадратного структурного элемента
	Iterations int   // число итераций дилатации
	MaxPixels  int   // предел ширина*высота до декодирования, 0 — без предела
}

// DefaultMaxPixels предел размера изображения по умолчанию (40 мегапикселей).
const DefaultMaxPixels = 40_000_000

// DefaultParams возвращает параметры по умолчанию: порог 127, ядро 3x3, 5 итераций.
func DefaultParams() Params {
	return Params{
		Threshold:  127,
		KernelSize: 3,
		Iterations: 5,
		MaxPixels:  DefaultMaxPixels,
	}
}
