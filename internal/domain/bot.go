package domain

import (
	"encoding/json"
	"time"
)

// BotState mirrors the WhatsApp bot's connection status in-process so the
// dashboard can show it in real time. It is never persisted: a restart
// resets it to disconnected, which the bot corrects on its next report.
type BotState struct {
	Connected   bool      `json:"connected"`
	QR          *string   `json:"qr"`
	PhoneNumber *string   `json:"phoneNumber"`
	Error       *string   `json:"error"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

// BotStateUpdate is a partial update. Fields left unset keep their previous
// value; nullable fields distinguish "not sent" from "explicitly null".
// LastUpdate is stamped by the store, never by callers.
type BotStateUpdate struct {
	Connected   *bool          `json:"connected"`
	QR          NullableString `json:"qr"`
	PhoneNumber NullableString `json:"phoneNumber"`
	Error       NullableString `json:"error"`
}

type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
