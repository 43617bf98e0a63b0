package domain

import (
	"time"

	"github.com/google/uuid"
)

// SignalType defines the type of real-time signal sent to clients.
type SignalType string

const (
	SignalJoinedEvent    SignalType = "joined_event"
	SignalError          SignalType = "error_message"
	SignalChatMessage    SignalType = "chat_message"
	SignalEventActivity  SignalType = "event_registration_activity"
	SignalGlobalActivity SignalType = "global_registration_activity"
	SignalReportActivity SignalType = "report_event_activity"
)

// Signal is the payload sent over WebSocket.
type Signal struct {
	Type    SignalType  `json:"type"`
	Payload interface{} `json:"payload"`
	EventID uuid.UUID   `json:"eventId"` // Used for routing to event "rooms"
}

// ActivityRegister and ActivityUnregister tag participation activity.
const (
	ActivityRegister   = "register"
	ActivityUnregister = "unregister"
)

// RegistrationActivity is the payload for both room-scoped and platform-wide
// participation signals.
type RegistrationActivity struct {
	EventID  string `json:"eventId"`
	Type     string `json:"type"` // register | unregister
	Identity string `json:"identity"`
}

// ReportActivity is the payload of the moderator-only report alert.
type ReportActivity struct {
	Event    string `json:"event"`
	Reporter string `json:"reporter"`
	Reason   string `json:"reason"`
}

// ErrorText is the payload of an error_message signal.
type ErrorText struct {
	Text string `json:"text"`
}

// JoinAck is the payload of a joined_event signal.
type JoinAck struct {
	EventID string `json:"eventId"`
}

// MessageSnapshot matches the wire shape of a broadcast chat message.
type MessageSnapshot struct {
	ID        string        `json:"id"`
	Event     string        `json:"event"`
	Sender    PublicProfile `json:"sender"`
	Text      string        `json:"text"`
	CreatedAt string        `json:"createdAt"`
}

// NewMessageSnapshot builds a wire snapshot from a persisted message and the
// public projection of its sender.
func NewMessageSnapshot(message *Message, sender *User) MessageSnapshot {
	return MessageSnapshot{
		ID:        message.ID.String(),
		Event:     message.EventID.String(),
		Sender:    sender.PublicProfile(),
		Text:      message.Text,
		CreatedAt: message.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewRegistrationSignal builds a room-scoped or global participation signal.
func NewRegistrationSignal(signalType SignalType, eventID, identity uuid.UUID, activity string) Signal {
	return Signal{
		Type: signalType,
		Payload: RegistrationActivity{
			EventID:  eventID.String(),
			Type:     activity,
			Identity: identity.String(),
		},
		EventID: eventID,
	}
}

// NewReportSignal builds a moderator-only report alert. The alert names the
// event and the reporter so moderators can triage without a lookup.
func NewReportSignal(report *Report, eventTitle, reporterName string) Signal {
	return Signal{
		Type: SignalReportActivity,
		Payload: ReportActivity{
			Event:    eventTitle,
			Reporter: reporterName,
			Reason:   string(report.Reason),
		},
		EventID: report.EventID,
	}
}
