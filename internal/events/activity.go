package events

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one human-readable line of the activity log.
type Entry struct {
	At   time.Time
	Type string
	Text string
}

// Activity is the activity log reduced from events, newest last.
type Activity struct {
	Session string
	Entries []Entry
	Phase   string
	Limit   int
}

// NewActivity returns an empty log keeping at most limit entries. A limit
// of zero keeps everything.
func NewActivity(session string, limit int) *Activity {
	return &Activity{Session: session, Limit: limit, Phase: "home"}
}

// Apply folds one event into the log. Events of other sessions are ignored.
func (a *Activity) Apply(event Event) {
	if a.Session != "" && event.Session != a.Session {
		return
	}

	var text string
	switch event.Type {
	case EventTypePhase:
		a.Phase = event.To
		text = fmt.Sprintf("%s → %s (%s)", event.From, event.To, event.Action)
	case EventTypeOverlay:
		name, state, _ := strings.Cut(event.Action, ":")
		text = fmt.Sprintf("%s %s", overlayName(name), state)
	case EventTypeProgress:
		text = event.Data
	case EventTypeCapture:
		text = fmt.Sprintf("capture %s: %s", event.Action, event.Data)
	case EventTypeQuiz:
		text = fmt.Sprintf("quiz %s %s", event.Action, event.Data)
	case EventTypeRoute:
		text = fmt.Sprintf("navigate %s", event.To)
	default:
		return
	}

	a.Entries = append(a.Entries, Entry{At: event.Timestamp, Type: event.Type, Text: strings.TrimSpace(text)})
	if a.Limit > 0 && len(a.Entries) > a.Limit {
		a.Entries = a.Entries[len(a.Entries)-a.Limit:]
	}
}

func overlayName(name string) string {
	switch name {
	case "ar":
		return "AR preview"
	case "chat":
		return "chat"
	}
	return name
}

// Lines renders entries as "15:04:05 text".
func (a *Activity) Lines() []string {
	lines := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		lines[i] = e.At.Format("15:04:05") + "  " + e.Text
	}
	return lines
}
