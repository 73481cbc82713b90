package entity

import "time"

// LogMessage is a structured log record written to the database sink.
type LogMessage struct {
	Time   time.Time `json:"time" bson:"time"`
	Level  string    `json:"level" bson:"level"`
	Module string    `json:"module" bson:"module"`
	Text   string    `json:"text" bson:"text"`
	Error  string    `json:"error,omitempty" bson:"error,omitempty"`
}

func (m *LogMessage) DataType() string {
	return "log"
}

// CheckoutResult is returned to the shop frontend after a checkout request.
// Redirect flow fills Url, embedded flow fills Token and Options. Message
// carries the status text when no credentials could be obtained.
type CheckoutResult struct {
	OrderRef string         `json:"order_id"`
	Url      string         `json:"url,omitempty"`
	Token    string         `json:"token,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
	Message  string         `json:"message,omitempty"`
}
