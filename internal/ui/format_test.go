package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPayload(t *testing.T) {
	payload := map[string]any{
		"msg": "Welcome admin!",
		"locations": []any{
			map[string]any{"id": float64(1), "prime_location_name": "Downtown"},
		},
		"active":  true,
		"nothing": nil,
		"users":   []any{},
	}

	got := formatPayload(payload)
	want := []string{
		"active     yes",
		"locations",
		"  [0]",
		"    id                   1",
		"    prime location name  Downtown",
		"msg        Welcome admin!",
		"nothing    -",
		"users",
		"  (none)",
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []string{"(empty)"}, formatPayload(map[string]any{}))
}

func TestFormatRemaining(t *testing.T) {
	cases := map[time.Duration]string{
		0:                            "",
		-time.Minute:                 "",
		20 * time.Second:             "<1m",
		45 * time.Minute:             "45m",
		3*time.Hour + 12*time.Minute: "3h12m",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatRemaining(in), "formatRemaining(%v)", in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long na…", truncate("long name here", 8))
	assert.Equal(t, "", truncate("x", 0))
}
