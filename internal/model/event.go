package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CommandEnd is the control marker that closes a day.
const CommandEnd = "END"

// ErrInvalidEvent is returned when an event violates the message/command invariant.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a single timestamped record in a day log. Exactly one of
// Message and Command is set.
type Event struct {
	Time     Clock
	Message  *string
	Command  *string
	Tag      *string
	JiraSync bool
	JiraSkip bool
}

// eventLine is the persisted form of an Event: one JSON object per line.
type eventLine struct {
	Time     string  `json:"time"`
	Message  *string `json:"message"`
	Command  *string `json:"command"`
	Tag      *string `json:"tag,omitempty"`
	JiraSync bool    `json:"jira_sync,omitempty"`
	JiraSkip bool    `json:"jira_skip,omitempty"`
}

// NewEvent builds an event and enforces that exactly one of message and
// command is non-nil.
func NewEvent(at Clock, message, command *string) (Event, error) {
	if (message == nil) == (command == nil) {
		return Event{}, fmt.Errorf("%w: exactly one of message and command must be set", ErrInvalidEvent)
	}
	if at < 0 || at >= 24*60 {
		return Event{}, fmt.Errorf("%w: time %d out of range", ErrInvalidEvent, int(at))
	}
	return Event{Time: at, Message: message, Command: command}, nil
}

// NewMessage returns an activity event.
func NewMessage(at Clock, message string) Event {
	return Event{Time: at, Message: &message}
}

// NewCommand returns a control event such as END.
func NewCommand(at Clock, command string) Event {
	return Event{Time: at, Command: &command}
}

// ParseEvent decodes one persisted line. Absent optional fields take their
// zero values and unknown fields are ignored. An empty tag reads as untagged.
func ParseEvent(line []byte) (Event, error) {
	var raw eventLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	at, err := ParseClock(raw.Time)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	e, err := NewEvent(at, raw.Message, raw.Command)
	if err != nil {
		return Event{}, err
	}
	if raw.Tag != nil && *raw.Tag != "" {
		e.Tag = raw.Tag
	}
	e.JiraSync = raw.JiraSync
	e.JiraSkip = raw.JiraSkip
	return e, nil
}

// MarshalLine encodes the event as a single JSON line without the trailing newline.
func (e Event) MarshalLine() ([]byte, error) {
	if (e.Message == nil) == (e.Command == nil) {
		return nil, fmt.Errorf("%w: exactly one of message and command must be set", ErrInvalidEvent)
	}
	return json.Marshal(eventLine{
		Time:     e.Time.String(),
		Message:  e.Message,
		Command:  e.Command,
		Tag:      e.Tag,
		JiraSync: e.JiraSync,
		JiraSkip: e.JiraSkip,
	})
}

// IsIssue reports whether the event message is an issue marker ("#KEY ...").
func (e Event) IsIssue() bool {
	return e.Message != nil && strings.HasPrefix(*e.Message, "#")
}

// IsEnd reports whether the event closes the day.
func (e Event) IsEnd() bool {
	return e.Command != nil && *e.Command == CommandEnd
}

// HasTag reports whether a tag has been assigned.
func (e Event) HasTag() bool {
	return e.Tag != nil
}

// TagName returns the tag, or "" when untagged.
func (e Event) TagName() string {
	if e.Tag == nil {
		return ""
	}
	return *e.Tag
}

// Text returns the message, or the command for control events.
func (e Event) Text() string {
	if e.Message != nil {
		return *e.Message
	}
	if e.Command != nil {
		return *e.Command
	}
	return ""
}

// IssueFragment returns the issue key part of an issue marker: the text up
// to the first space with the leading '#' removed.
func (e Event) IssueFragment() string {
	if !e.IsIssue() {
		return ""
	}
	head, _, _ := strings.Cut(strings.TrimPrefix(*e.Message, "#"), " ")
	return head
}

// IssueComment returns the free text after the issue key of an issue marker.
func (e Event) IssueComment() string {
	if !e.IsIssue() {
		return ""
	}
	_, rest, _ := strings.Cut(*e.Message, " ")
	return strings.TrimSpace(rest)
}

// SetTag assigns tag, or clears it when tag is empty. It reports whether the
// value changed.
func (e *Event) SetTag(tag string) bool {
	before := e.TagName()
	had := e.HasTag()
	if tag == "" {
		e.Tag = nil
		return had
	}
	e.Tag = &tag
	return !had || before != tag
}
