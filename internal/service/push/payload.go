package push

import "encoding/json"

const (
	DefaultTitle = "Nueva notificación"
	DefaultIcon  = "/icons/icon-192x192.png"
	DefaultBadge = "/icons/badge-72x72.png"
	DefaultURL   = "/dashboard"
)

// Payload is the resolved push notification content. Every field has a
// default applied independently, so one malformed value never invalidates
// the rest.
type Payload struct {
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Icon     string         `json:"icon"`
	Badge    string         `json:"badge"`
	Tag      string         `json:"tag,omitempty"`
	Renotify bool           `json:"renotify"`
	Data     map[string]any `json:"data,omitempty"`
}

// ResolvePayload decodes a raw push payload and fills defaults. A payload
// that is not valid JSON is treated as a plain-text body under the generic
// title; an empty payload yields the pure defaults.
func ResolvePayload(raw []byte) Payload {
	resolved := Payload{
		Title: DefaultTitle,
		Icon:  DefaultIcon,
		Badge: DefaultBadge,
	}
	if len(raw) == 0 {
		return resolved
	}

	var decoded struct {
		Title    *string        `json:"title"`
		Body     *string        `json:"body"`
		Icon     *string        `json:"icon"`
		Badge    *string        `json:"badge"`
		Tag      *string        `json:"tag"`
		Renotify *bool          `json:"renotify"`
		Data     map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		resolved.Body = string(raw)
		return resolved
	}

	if decoded.Title != nil && *decoded.Title != "" {
		resolved.Title = *decoded.Title
	}
	if decoded.Body != nil {
		resolved.Body = *decoded.Body
	}
	if decoded.Icon != nil && *decoded.Icon != "" {
		resolved.Icon = *decoded.Icon
	}
	if decoded.Badge != nil && *decoded.Badge != "" {
		resolved.Badge = *decoded.Badge
	}
	if decoded.Tag != nil {
		resolved.Tag = *decoded.Tag
	}
	if decoded.Renotify != nil {
		resolved.Renotify = *decoded.Renotify
	}
	resolved.Data = decoded.Data

	return resolved
}

// ClickURL is where a click on the notification should land: data.url when
// present, the dashboard otherwise. The service worker opens exactly one
// window per click, focusing an existing one when possible.
func (p Payload) ClickURL() string {
	if p.Data != nil {
		if url, ok := p.Data["url"].(string); ok && url != "" {
			return url
		}
	}
	return DefaultURL
}
