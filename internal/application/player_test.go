package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"undistort-player/internal/domain/entity"
)

type playerFixture struct {
	source    *fakeSource
	opener    *fakeOpener
	loader    *fakeLoader
	lens      *fakeLens
	corrector *fakeCorrector
	display   *fakeDisplay
	displays  *fakeDisplays
	observer  *recordingObserver
	notifier  *fakeNotifier
	out       *bytes.Buffer
}

func newPlayerFixture(frames int, fps float64) *playerFixture {
	f := &playerFixture{
		source:    &fakeSource{frames: frames, fps: fps},
		corrector: &fakeCorrector{},
		display:   &fakeDisplay{},
		observer:  &recordingObserver{},
		notifier:  &fakeNotifier{},
		out:       &bytes.Buffer{},
	}
	f.opener = &fakeOpener{source: f.source}
	f.loader = &fakeLoader{cal: &entity.Calibration{
		CameraMatrix: entity.IdentityCameraMatrix(),
		Distortion:   []float64{0, 0, 0, 0, 0},
		ImageWidth:   64,
		ImageHeight:  48,
	}}
	f.lens = &fakeLens{corrector: f.corrector}
	f.displays = &fakeDisplays{display: f.display}
	return f
}

func (f *playerFixture) service() *PlayerService {
	log, _ := test.NewNullLogger()
	return NewPlayerService(PlayerConfig{Alpha: DefaultAlpha, DefaultFPS: 30}, PlayerDeps{
		Videos:       f.opener,
		Calibrations: f.loader,
		Lens:         f.lens,
		Displays:     f.displays,
		Playback:     NewPlaybackService(PlaybackConfig{}, f.observer, log),
		Observer:     f.observer,
		Notifier:     f.notifier,
		Log:          log,
		Out:          f.out,
	})
}

func TestPlayerService_Run(t *testing.T) {
	f := newPlayerFixture(5, 25)

	res, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.NoError(t, err)

	require.Equal(t, entity.StateEndOfStream, res.State)
	require.Equal(t, 5, res.FramesShown)
	require.Equal(t, 25, res.FPS)
	require.Equal(t, "clip.avi", res.VideoPath)
	require.NotEmpty(t, res.RunID)

	require.Equal(t, "FPS: 25\nframe duration: 40 ms\n", f.out.String())
	require.Equal(t, DefaultAlpha, f.lens.alpha)
	require.Equal(t, "clip.avi", f.display.title)

	require.True(t, f.source.closed)
	require.True(t, f.corrector.closed)
	require.True(t, f.display.closed)

	require.Equal(t, 1, f.observer.started)
	require.Len(t, f.observer.finished, 1)
	require.Len(t, f.notifier.results, 1)
	require.Equal(t, res, f.notifier.results[0])
}

func TestPlayerService_Run_ThirtyFPS(t *testing.T) {
	f := newPlayerFixture(1, 30)

	_, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.NoError(t, err)
	require.Equal(t, "FPS: 30\nframe duration: 33 ms\n", f.out.String())
}

func TestPlayerService_Run_FallbackFPS(t *testing.T) {
	f := newPlayerFixture(1, 0)

	res, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.NoError(t, err)
	require.Equal(t, 30, res.FPS)
	require.Equal(t, "FPS: 30\nframe duration: 33 ms\n", f.out.String())
}

func TestPlayerService_Run_Usage(t *testing.T) {
	f := newPlayerFixture(1, 25)

	_, err := f.service().Run(context.Background(), "clip.avi", "")
	require.ErrorIs(t, err, entity.ErrUsage)
	require.Empty(t, f.opener.opened)
	require.Empty(t, f.display.title)
}

func TestPlayerService_Run_SourceOpenError(t *testing.T) {
	f := newPlayerFixture(1, 25)
	f.opener.err = errors.New("no such file")

	_, err := f.service().Run(context.Background(), "missing.avi", "calib.xml")

	var openErr *entity.SourceOpenError
	require.ErrorAs(t, err, &openErr)
	require.Equal(t, "missing.avi", openErr.Path)
	require.Empty(t, f.out.String())
	require.Empty(t, f.display.title)
}

func TestPlayerService_Run_CalibrationError(t *testing.T) {
	f := newPlayerFixture(1, 25)
	f.loader.err = &entity.CalibrationParseError{Path: "calib.xml", Field: entity.FieldCameraMatrix, Err: errors.New("missing")}

	_, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")

	var parseErr *entity.CalibrationParseError
	require.ErrorAs(t, err, &parseErr)
	require.True(t, f.source.closed, "video source must be released on error")
	require.Empty(t, f.display.title)
}

func TestPlayerService_Run_DisplayError(t *testing.T) {
	f := newPlayerFixture(1, 25)
	f.displays.err = errors.New("no display")

	_, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.ErrorContains(t, err, "open window")
	require.True(t, f.source.closed)
	require.True(t, f.corrector.closed)
}

func TestPlayerService_Run_QuitKey(t *testing.T) {
	f := newPlayerFixture(10, 25)
	f.display.keys = map[int]int{3: 'q'}

	res, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.NoError(t, err)
	require.Equal(t, entity.StateQuitRequested, res.State)
	require.Equal(t, 3, res.FramesShown)
	require.True(t, f.display.closed)
}

func TestPlayerService_Run_NotifierErrorIsNotFatal(t *testing.T) {
	f := newPlayerFixture(2, 25)
	f.notifier.err = errors.New("telegram down")

	res, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.NoError(t, err)
	require.Equal(t, entity.StateEndOfStream, res.State)
}

func TestPlayerService_Run_PlaybackErrorSkipsReport(t *testing.T) {
	f := newPlayerFixture(5, 25)
	f.corrector.failAt = 2

	res, err := f.service().Run(context.Background(), "clip.avi", "calib.xml")
	require.Error(t, err)
	require.Equal(t, 1, res.FramesShown)
	require.Empty(t, f.notifier.results)
	require.Len(t, f.observer.finished, 1)
	require.Equal(t, entity.StateFailed, f.observer.finished[0].State)
	require.True(t, f.display.closed)
}
