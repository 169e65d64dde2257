package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"mixed case and punctuation", "Next.js  Conf '25!", "nextjs-conf-25"},
		{"simple title", "Go Meetup", "go-meetup"},
		{"surrounding whitespace", "  Cloud Summit  ", "cloud-summit"},
		{"repeated separators", "AI -- and -- You", "ai-and-you"},
		{"already canonical", "devops-days-2025", "devops-days-2025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slug(tc.title))
		})
	}
}

func TestSlugIdempotent(t *testing.T) {
	titles := []string{"Next.js  Conf '25!", "Go Meetup", "  Cloud   Summit 2025 "}
	for _, title := range titles {
		once := Slug(title)
		assert.Equal(t, once, Slug(once))
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "2025-03-05", "2025-03-05"},
		{"slash separated", "2025/03/05", "2025-03-05"},
		{"unpadded", "2025-3-5", "2025-03-05"},
		{"long form", "March 5, 2025", "2025-03-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDateInvalid(t *testing.T) {
	for _, raw := range []string{"not-a-date", "", "2025-13-45"} {
		_, err := Date(raw)
		require.Error(t, err)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrInvalidFormat.Code, appErr.Code)
	}
}

func TestTime(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"pm with space", "2:30 PM", "14:30"},
		{"pm without space", "2:30pm", "14:30"},
		{"am", "9:05 AM", "09:05"},
		{"midnight", "12:00 AM", "00:00"},
		{"noon", "12:00 PM", "12:00"},
		{"already 24h", "14:30", "14:30"},
		{"single digit hour", "7:45", "07:45"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Time(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeInvalid(t *testing.T) {
	for _, raw := range []string{"25:00", "12:61", "half past nine", "1430", ""} {
		_, err := Time(raw)
		require.Error(t, err, "input %q", raw)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrInvalidFormat.Code, appErr.Code)
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("  User@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got)

	for _, raw := range []string{"not-an-email", "user@", "@example.com", ""} {
		_, err := Email(raw)
		require.Error(t, err, "input %q", raw)
	}
}
