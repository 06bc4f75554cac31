package guidance

import "time"

// TimedMessage is one guidance string with the moment it became relevant.
// Display timing (fade-out and the like) is the presentation layer's
// concern; the list only records insertion time.
type TimedMessage struct {
	Message string
	AddedAt time.Time
}

// MessageList is an ordered collection of guidance messages. Order is
// insertion order of Add calls, independent of any feedback-set iteration
// order. Not safe for concurrent use; the owning model serializes access.
type MessageList struct {
	messages []TimedMessage
}

// NewMessageList returns an empty message list.
func NewMessageList() *MessageList {
	return &MessageList{}
}

// Add appends msg if it is not already present. Returns true when the
// message was appended.
func (l *MessageList) Add(msg string) bool {
	if l.Contains(msg) {
		return false
	}
	l.messages = append(l.messages, TimedMessage{Message: msg, AddedAt: time.Now()})
	return true
}

// Remove deletes the first occurrence of msg. Returns true when a message
// was removed.
func (l *MessageList) Remove(msg string) bool {
	for i, m := range l.messages {
		if m.Message == msg {
			l.messages = append(l.messages[:i], l.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all messages.
func (l *MessageList) Clear() {
	l.messages = nil
}

// Contains reports whether msg is present.
func (l *MessageList) Contains(msg string) bool {
	for _, m := range l.messages {
		if m.Message == msg {
			return true
		}
	}
	return false
}

// Len returns the number of messages.
func (l *MessageList) Len() int {
	return len(l.messages)
}

// Messages returns the message strings in insertion order.
func (l *MessageList) Messages() []string {
	out := make([]string, len(l.messages))
	for i, m := range l.messages {
		out[i] = m.Message
	}
	return out
}
