package service

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/noah-isme/event-board/internal/models"
)

// DisplayLayout renders e.g. "Mon, January 1, 2024, 10:00".
const DisplayLayout = "Mon, January 2, 2006, 15:04"

// DisplayFormatter formats timestamps in the configured display time zone.
type DisplayFormatter struct {
	loc *time.Location
}

// NewDisplayFormatter loads the named IANA zone.
func NewDisplayFormatter(zone string) (*DisplayFormatter, error) {
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %s: %w", zone, err)
	}
	return &DisplayFormatter{loc: loc}, nil
}

// Format renders ts for display; the zero timestamp renders empty.
func (f *DisplayFormatter) Format(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(f.Location()).Format(DisplayLayout)
}

// Location returns the display zone, UTC when unset.
func (f *DisplayFormatter) Location() *time.Location {
	if f == nil || f.loc == nil {
		return time.UTC
	}
	return f.loc
}
