package ascii

import (
	"strings"
	"testing"
	"time"

	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_FormatUsers(t *testing.T) {
	f := &Formatter{now: func() time.Time {
		return time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)
	}}

	tests := []struct {
		name     string
		users    []*domain.User
		contains []string
		order    []string
	}{
		{
			name: "sorted by login",
			users: []*domain.User{
				{ID: "2", Login: "wojtek", Age: 18},
				{ID: "1", Login: "admin", Age: 60},
			},
			contains: []string{"Users (2)", "2025-12-29 10:00:00"},
			order:    []string{"admin", "wojtek"},
		},
		{
			name:     "empty",
			contains: []string{"Users (0)", noneString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.FormatUsers(tt.users)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}

			last := -1
			for _, s := range tt.order {
				idx := strings.Index(out, s)
				assert.Greater(t, idx, last)
				last = idx
			}
		})
	}
}

func TestFormatter_FormatUser(t *testing.T) {
	out, err := NewFormatter().FormatUser(&domain.User{ID: "e2ac4fba", Login: "test", Age: 10})

	require.NoError(t, err)
	assert.Contains(t, out, "ID:    e2ac4fba")
	assert.Contains(t, out, "Age:   10")
}

func TestFormatBoxTitle(t *testing.T) {
	plain := formatBoxTitle("Users")
	bold := formatBoxTitle("\033[1mUsers\033[0m")

	assert.Equal(t, len(strings.ReplaceAll(strings.ReplaceAll(bold, "\033[1m", ""), "\033[0m", "")), len(plain))
}
