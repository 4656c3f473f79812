package vision

import "time"

// waitMillis переводит таймаут в миллисекунды для WaitKey.
// WaitKey(0) ждёт бесконечно, поэтому ждём минимум 1 мс.
func waitMillis(timeout time.Duration) int {
	ms := int((timeout + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

// windowVisible толкует WND_PROP_VISIBLE: закрытое окно даёт 0, а уничтоженное -1
func windowVisible(prop float64) bool {
	return prop >= 1
}

func autosizeHeld(prop float64) bool {
	return prop == float64(windowAutosize)
}

// windowAutosize значение cv::WINDOW_AUTOSIZE
const windowAutosize = 1
