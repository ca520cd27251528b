package utils

import (
	"fmt"
	"time"
)

// MessageType selects the color of a terminal message.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	StatusMessage:  StatusColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
}

// DecorateText wraps s in the color of msgType and resets the color after it.
// Unknown message types leave s untouched.
func DecorateText(s string, msgType MessageType) string {
	c, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return c + s + DefaultColor
}

// FormatTime renders d as e.g. "1.50s", "2m 5.00s" or "1d 2h 0m 3.00s".
func FormatTime(d time.Duration) string {
	secs := (d % time.Minute).Seconds()
	mins := int64(d/time.Minute) % 60
	hours := int64(d/time.Hour) % 24
	days := int64(d / (24 * time.Hour))

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", mins, secs)
	case days == 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, mins, secs)
	}
	return fmt.Sprintf("%dd %dh %dm %.2fs", days, hours, mins, secs)
}
