package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies events, categories and users. The events API hands out
// numeric identifiers but may echo them back as strings.
type ID int64

// ParseID converts a path or form value into an ID.
func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty id")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return ID(n), nil
}

// String renders the identifier as used in URLs.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts both 42 and "42".
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*id = 0
			return nil
		}
		parsed, err := ParseID(raw)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n)
	return nil
}

// Timestamp layouts accepted from the API and from HTML datetime-local inputs.
const (
	LayoutDateTimeLocal   = "2006-01-02T15:04"
	LayoutDateTimeSeconds = "2006-01-02T15:04:05"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	LayoutDateTimeSeconds,
	LayoutDateTimeLocal,
}

// Timestamp is a point in time that remembers the layout it was decoded from
// so it re-encodes exactly as the backend stored it.
type Timestamp struct {
	time.Time
	layout string
}

// NewTimestamp wraps t using RFC3339 for encoding.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, layout: time.RFC3339}
}

// ParseTimestamp parses raw with the first matching accepted layout. Values
// without an offset are read as UTC.
func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Time: t, layout: layout}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", raw)
}

// String formats the timestamp in its original layout.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	layout := t.layout
	if layout == "" {
		layout = time.RFC3339
	}
	return t.Time.Format(layout)
}

// HasOffset reports whether the value carried a UTC offset when parsed.
func (t Timestamp) HasOffset() bool {
	return t.layout == "" || t.layout == time.RFC3339 || t.layout == time.RFC3339Nano
}

// In returns the instant in loc. Values parsed without an offset are wall
// clock readings and are placed in loc unchanged.
func (t Timestamp) In(loc *time.Location) time.Time {
	if t.HasOffset() {
		return t.Time.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// MarshalJSON encodes the zero timestamp as an empty string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes any accepted layout; empty strings and null give the
// zero timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Event is the primary record served by the events API.
type Event struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	StartTime   Timestamp `json:"startTime"`
	EndTime     Timestamp `json:"endTime"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   ID        `json:"createdBy"`
	CategoryIDs []ID      `json:"categoryIds"`
}

// HasCategory reports whether the event is tagged with id.
func (e Event) HasCategory(id ID) bool {
	for _, categoryID := range e.CategoryIDs {
		if categoryID == id {
			return true
		}
	}
	return false
}

// Category is a named tag applied to events.
type Category struct {
	ID   ID     `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// User is referenced as an event's creator.
type User struct {
	ID    ID     `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Image string `json:"image,omitempty" db:"image"`
}

// UnknownLabel is shown for dangling creator and category references.
const UnknownLabel = "Unknown"

// EventDetail is an event with its creator and category references resolved.
type EventDetail struct {
	Event
	CreatedByName  string   `json:"createdByName"`
	CreatedByImage string   `json:"createdByImage,omitempty"`
	CategoryNames  []string `json:"eventCategories"`
}
