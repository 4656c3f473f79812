package entity

import (
	"errors"
	"fmt"
)

// ErrUsage не переданы пути к видео и файлу калибровки
var ErrUsage = errors.New("video file and calibration file are required")

// SourceOpenError видеофайл не удалось открыть
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("open video %q: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// CalibrationParseError поле калибровки отсутствует или имеет неверную форму
type CalibrationParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *CalibrationParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("calibration %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("calibration %q: field %s: %v", e.Path, e.Field, e.Err)
}

func (e *CalibrationParseError) Unwrap() error { return e.Err }
