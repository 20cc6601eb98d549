package output

import "fmt"

// FormatDuration renders accumulated seconds in the tracker's house style:
// "42 sec", "3 min 12 sec", "2 hr 5 min 30 sec".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%d min %d sec", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d hr %d min %d sec", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatClock renders seconds as a live hh:mm:ss timer readout.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
