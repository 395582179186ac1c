package classifier

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"glyphscan/internal/domain/entity"
)

// LabelColumn колонка таблицы классов с отображаемым символом.
const LabelColumn = "char"

// LoadLabelMap читает таблицу классов из CSV-файла.
func LoadLabelMap(path string) (entity.LabelMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, entity.NewError(entity.KindModelUnavailable, "open label map", err)
	}
	defer f.Close()

	labels, err := ReadLabelMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}

// ReadLabelMap разбирает таблицу классов: первая строка — заголовок, порядок строк
// совпадает с индексами выхода модели.
func ReadLabelMap(r io.Reader) (entity.LabelMap, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, entity.NewError(entity.KindModelUnavailable, "read label header", err)
	}
	column := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == LabelColumn {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, entity.Errorf(entity.KindModelUnavailable, "read label header", "no %q column in %v", LabelColumn, header)
	}

	var labels entity.LabelMap
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, entity.NewError(entity.KindModelUnavailable, "read label row", err)
		}
		if column >= len(record) || record[column] == "" {
			return nil, entity.Errorf(entity.KindModelUnavailable, "read label row", "row %d has no %q value", len(labels)+1, LabelColumn)
		}
		labels = append(labels, record[column])
	}
	if len(labels) == 0 {
		return nil, entity.Errorf(entity.KindModelUnavailable, "read label map", "no labels")
	}
	return labels, nil
}
