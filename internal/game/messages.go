package game

import (
	"strings"

	"github.com/spacehole-rogue/cavern_rogue/internal/render"
)

// MsgPriority controls how a message is colored in the log panel.
type MsgPriority uint8

const (
	MsgInfo    MsgPriority = iota // light gray
	MsgWarning                    // yellow
	MsgDanger                     // light red
)

// Color returns the palette index used to draw messages of this priority.
func (p MsgPriority) Color() uint8 {
	switch p {
	case MsgWarning:
		return render.ColorYellow
	case MsgDanger:
		return render.ColorLightRed
	default:
		return render.ColorLightGray
	}
}

// Message is a single line in the log.
type Message struct {
	Text     string
	Priority MsgPriority
	Tick     uint64
}

// MessageLog is a bounded FIFO of wrapped message lines.
type MessageLog struct {
	Messages []Message
	maxSize  int
	width    int
	now      uint64
}

// NewMessageLog creates a log that keeps the most recent maxSize lines,
// wrapping text at width columns.
func NewMessageLog(maxSize, width int) *MessageLog {
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		width:    max(width, 1),
	}
}

// SetTick stamps subsequent messages with the given tick.
func (l *MessageLog) SetTick(t uint64) { l.now = t }

// Add appends text, evicting the oldest lines when full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	for _, line := range wrapText(text, l.width) {
		msg := Message{Text: line, Priority: priority, Tick: l.now}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// wrapText splits s into lines no longer than width. Words longer than the
// width get a line of their own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(lines, line)
}

// Recent returns the last n lines (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []Message {
	n = max(min(n, len(l.Messages)), 0)
	return l.Messages[len(l.Messages)-n:]
}
