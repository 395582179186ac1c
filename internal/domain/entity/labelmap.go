package entity

// LabelMap сопоставляет индекс выхода модели отображаемому символу.
type LabelMap []string

// Lookup возвращает символ для индекса класса.
func (l LabelMap) Lookup(index int) (string, error) {
	if index < 0 || index >= len(l) {
		return "", Errorf(KindInference, "label lookup", "class index %d outside label map of %d", index, len(l))
	}
	return l[index], nil
}

// Argmax возвращает индекс максимального значения; при равенстве побеждает меньший индекс.
// Для пустого среза возвращает -1.
func Argmax(scores []float32) int {
	best := -1
	for i, v := range scores {
		if best < 0 || v > scores[best] {
			best = i
		}
	}
	return best
}
