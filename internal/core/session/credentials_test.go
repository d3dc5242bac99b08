package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	table, err := DemoCredentials()
	require.NoError(t, err)
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		username string
		password string
		wantOK   bool
		wantRole Role
	}{
		{"admin", "admin", "admin123", true, RoleAdmin},
		{"operator", "operator", "operator123", true, RoleOperator},
		{"wrong password", "admin", "wrong", false, ""},
		{"unknown user", "ghost", "admin123", false, ""},
		{"empty", "", "", false, ""},
		{"cross password", "operator", "admin123", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, ok := table.Authenticate(tt.username, tt.password, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.username, subject.Username)
				assert.Equal(t, tt.wantRole, subject.Role)
				assert.Equal(t, now, subject.LastLogin)
			} else {
				assert.Equal(t, Subject{}, subject)
			}
		})
	}
}

func TestDemoCredentials_StoresHashesOnly(t *testing.T) {
	table, err := DemoCredentials()
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", string(table["admin"].PasswordHash))
	assert.Equal(t, "Command", table["admin"].Subject.Department)
	assert.Equal(t, "Amaan Husain", table["admin"].Subject.FullName)
}
