// Package calibration читает файлы калибровки камеры в форматах OpenCV FileStorage (XML, YAML, JSON).
package calibration

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"undistort-player/internal/domain/entity"
	"undistort-player/internal/domain/port"
)

var (
	errMissing    = errors.New("missing")
	errNotNumeric = errors.New("not numeric")
)

// rawNode узел хранилища до разбора чисел
type rawNode struct {
	rows, cols int // 0, если размер не объявлен
	values     []string
}

// FileLoader загружает калибровку из файла
type FileLoader struct{}

// NewFileLoader создаёт загрузчик
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load читает файл и проверяет все обязательные поля
func (l *FileLoader) Load(path string) (*entity.Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entity.CalibrationParseError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse разбирает содержимое файла; path нужен для выбора формата и текста ошибок
func Parse(path string, data []byte) (*entity.Calibration, error) {
	var (
		nodes map[string]rawNode
		err   error
	)
	if isXML(path, data) {
		nodes, err = decodeXML(data)
	} else {
		nodes, err = decodeYAML(data)
	}
	if err != nil {
		return nil, &entity.CalibrationParseError{Path: path, Err: err}
	}
	return build(path, nodes)
}

func isXML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return true
	case ".yml", ".yaml", ".json":
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("<"))
}

func build(path string, nodes map[string]rawNode) (*entity.Calibration, error) {
	fail := func(field string, err error) error {
		return &entity.CalibrationParseError{Path: path, Field: field, Err: err}
	}

	cm, err := numbers(nodes, entity.FieldCameraMatrix)
	if err != nil {
		return nil, fail(entity.FieldCameraMatrix, err)
	}
	if cm.rows != 3 || cm.cols != 3 {
		return nil, fail(entity.FieldCameraMatrix, fmt.Errorf("expected 3x3 matrix, got %dx%d", cm.rows, cm.cols))
	}
	matrix, err := entity.NewCameraMatrix(cm.data)
	if err != nil {
		return nil, fail(entity.FieldCameraMatrix, err)
	}

	dist, err := numbers(nodes, entity.FieldDistortion)
	if err != nil {
		return nil, fail(entity.FieldDistortion, err)
	}
	if dist.rows != 1 && dist.cols != 1 {
		return nil, fail(entity.FieldDistortion, fmt.Errorf("expected a vector, got %dx%d matrix", dist.rows, dist.cols))
	}
	if !entity.ValidDistortionLength(len(dist.data)) {
		return nil, fail(entity.FieldDistortion, fmt.Errorf("expected 4, 5, 8, 12 or 14 coefficients, got %d", len(dist.data)))
	}

	width, err := dimension(nodes, entity.FieldImageWidth)
	if err != nil {
		return nil, fail(entity.FieldImageWidth, err)
	}
	height, err := dimension(nodes, entity.FieldImageHeight)
	if err != nil {
		return nil, fail(entity.FieldImageHeight, err)
	}

	return &entity.Calibration{
		CameraMatrix: matrix,
		Distortion:   dist.data,
		ImageWidth:   width,
		ImageHeight:  height,
	}, nil
}

type numericNode struct {
	rows, cols int
	data       []float64
}

// numbers разбирает значения узла; без объявленного размера узел считается вектором-столбцом
func numbers(nodes map[string]rawNode, field string) (*numericNode, error) {
	raw, ok := nodes[field]
	if !ok || len(raw.values) == 0 {
		return nil, errMissing
	}

	data := make([]float64, len(raw.values))
	for i, s := range raw.values {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d %q", errNotNumeric, i, s)
		}
		data[i] = v
	}

	rows, cols := raw.rows, raw.cols
	if rows == 0 && cols == 0 {
		rows, cols = len(data), 1
	}
	if rows*cols != len(data) {
		return nil, fmt.Errorf("declared %dx%d but has %d values", rows, cols, len(data))
	}
	return &numericNode{rows: rows, cols: cols, data: data}, nil
}

// dimension читает размер кадра; дробная часть отбрасывается
func dimension(nodes map[string]rawNode, field string) (int, error) {
	n, err := numbers(nodes, field)
	if err != nil {
		return 0, err
	}
	if len(n.data) != 1 {
		return 0, fmt.Errorf("expected a scalar, got %d values", len(n.data))
	}
	v := n.data[0]
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 || v > math.MaxInt32 {
		return 0, fmt.Errorf("must be a positive size, got %v", v)
	}
	return int(v), nil
}

var _ port.CalibrationLoader = (*FileLoader)(nil)
