package ui

import "time"

// Layout sizes.
const (
	// chromeHeight is the header, command bar and status line.
	chromeHeight = 3

	// LayoutCompactWidth is the threshold below which member rows drop
	// criteria details.
	LayoutCompactWidth = 80

	// chatLines is how many recent chat lines the party view shows.
	chatLines = 8

	chatCharLimit = 200
)

// Log display limits.
const (
	// LogFetchLimit is the number of trailing log lines read per refresh.
	LogFetchLimit = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
