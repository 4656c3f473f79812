//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"undistort-player/internal/domain/entity"
)

func testCalibration(t *testing.T) *entity.Calibration {
	t.Helper()
	cm, err := entity.NewCameraMatrix([]float64{
		657.46, 0, 319.5,
		0, 657.46, 239.5,
		0, 0, 1,
	})
	require.NoError(t, err)
	return &entity.Calibration{
		CameraMatrix: cm,
		Distortion:   []float64{-0.418, 0.507, 0, 0, -0.578},
		ImageWidth:   640,
		ImageHeight:  480,
	}
}

// patternMat рисует кадр с сеткой, чтобы сравнение пикселей было осмысленным
func patternMat(w, h int) gocv.Mat {
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	mat.SetTo(gocv.NewScalar(30, 60, 90, 0))
	for x := 0; x < w; x += 8 {
		gocv.Line(&mat, image.Pt(x, 0), image.Pt(x, h-1), color.RGBA{R: 255, A: 255}, 1)
	}
	for y := 0; y < h; y += 8 {
		gocv.Line(&mat, image.Pt(0, y), image.Pt(w-1, y), color.RGBA{G: 255, A: 255}, 1)
	}
	return mat
}

func TestLensModel_IdentityIsPixelIdentical(t *testing.T) {
	cal := &entity.Calibration{
		CameraMatrix: entity.IdentityCameraMatrix(),
		Distortion:   []float64{0, 0, 0, 0, 0},
		ImageWidth:   64,
		ImageHeight:  48,
	}
	lens := NewLensModel()

	corrector, err := lens.NewCorrector(cal, cal.CameraMatrix)
	require.NoError(t, err)
	defer corrector.Close()

	src := patternMat(64, 48)
	defer src.Close()

	out, err := corrector.Undistort(NewMatFrame(&src))
	require.NoError(t, err)
	require.Equal(t, image.Pt(64, 48), out.Size())

	dst := out.(MatFrame).Mat()
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(src, *dst, &diff)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray)

	over := gocv.NewMat()
	defer over.Close()
	gocv.Threshold(gray, &over, 1, 255, gocv.ThresholdBinary)
	require.Zero(t, gocv.CountNonZero(over))
}

func TestLensModel_OptimalMatrixIsDeterministic(t *testing.T) {
	lens := NewLensModel()

	first, err := lens.OptimalCameraMatrix(testCalibration(t), 0.5)
	require.NoError(t, err)
	second, err := lens.OptimalCameraMatrix(testCalibration(t), 0.5)
	require.NoError(t, err)

	require.True(t, first.Equal(second))
	require.Equal(t, 1.0, first.At(2, 2))
}

func TestLensModel_OptimalMatrixNoDistortion(t *testing.T) {
	cal := testCalibration(t)
	cal.Distortion = []float64{0, 0, 0, 0, 0}

	adjusted, err := NewLensModel().OptimalCameraMatrix(cal, 0.5)
	require.NoError(t, err)
	require.True(t, adjusted.EqualApprox(cal.CameraMatrix, 1.0))
}

func TestLensModel_RejectsBadAlpha(t *testing.T) {
	_, err := NewLensModel().OptimalCameraMatrix(testCalibration(t), 1.5)
	require.Error(t, err)
}

func TestCorrector_RejectsForeignFrame(t *testing.T) {
	cal := testCalibration(t)
	corrector, err := NewLensModel().NewCorrector(cal, cal.CameraMatrix)
	require.NoError(t, err)
	defer corrector.Close()

	_, err = corrector.Undistort(nil)
	require.Error(t, err)
}

func TestVideoOpener_MissingFile(t *testing.T) {
	_, err := NewVideoOpener().Open(filepath.Join(t.TempDir(), "missing.avi"))
	require.Error(t, err)
}

func TestVideoSource_ReadsAllFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synthetic.avi")
	const frames = 6

	writer, err := gocv.VideoWriterFile(path, "MJPG", 25, 64, 48, true)
	require.NoError(t, err)
	frame := patternMat(64, 48)
	for i := 0; i < frames; i++ {
		require.NoError(t, writer.Write(frame))
	}
	require.NoError(t, frame.Close())
	require.NoError(t, writer.Close())

	src, err := NewVideoOpener().Open(path)
	require.NoError(t, err)
	defer src.Close()

	require.InDelta(t, 25.0, src.FPS(), 0.01)

	read := 0
	for {
		f, ok := src.Read()
		if !ok {
			break
		}
		require.Equal(t, image.Pt(64, 48), f.Size())
		read++
	}
	require.Equal(t, frames, read)
}

func TestWindow_ReportsHighGUIVisibility(t *testing.T) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display available")
	}
	log, _ := test.NewNullLogger()

	display, err := NewWindowFactory(log).Open("undistort-window-test")
	require.NoError(t, err)

	frame := patternMat(64, 48)
	defer frame.Close()
	require.NoError(t, display.Show(NewMatFrame(&frame)))
	display.WaitKey(10 * time.Millisecond)
	require.True(t, display.IsOpen())

	// окно уничтожено мимо нашего Window, как при нажатии на крестик
	other := gocv.NewWindow("undistort-window-test")
	require.NoError(t, other.Close())
	display.WaitKey(10 * time.Millisecond)
	require.False(t, display.IsOpen())

	require.NoError(t, display.Close())
	require.False(t, display.IsOpen())
}
