package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-board/internal/models"
)

func TestDisplayFormatterUsesConfiguredZone(t *testing.T) {
	formatter, err := NewDisplayFormatter("Europe/Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Mon, January 1, 2024, 10:00", formatter.Format(mustTimestamp(t, "2024-01-01T09:00:00Z")))
	assert.Equal(t, "Sat, June 1, 2024, 18:00", formatter.Format(mustTimestamp(t, "2024-06-01T18:00")))
	assert.Equal(t, "", formatter.Format(models.Timestamp{}))
}

func TestDisplayFormatterRejectsUnknownZone(t *testing.T) {
	_, err := NewDisplayFormatter("Mars/Olympus")
	assert.Error(t, err)
}
