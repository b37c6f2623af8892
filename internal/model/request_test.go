package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantEmail    string
		wantPassword string
	}{
		{
			name:         "capitalized fields",
			payload:      `{"Email": "jane@example.com", "Password": "secret"}`,
			wantEmail:    "jane@example.com",
			wantPassword: "secret",
		},
		{
			name:         "lowercase fields",
			payload:      `{"email": "jane@example.com", "password": "secret"}`,
			wantEmail:    "jane@example.com",
			wantPassword: "secret",
		},
		{
			name:         "capitalized wins when both appear",
			payload:      `{"Email": "caps@example.com", "email": "lower@example.com", "Password": "capsecret", "password": "lowsecret"}`,
			wantEmail:    "caps@example.com",
			wantPassword: "capsecret",
		},
		{
			name:         "mixed casing per field",
			payload:      `{"Email": "jane@example.com", "password": "secret"}`,
			wantEmail:    "jane@example.com",
			wantPassword: "secret",
		},
		{
			name:         "missing fields stay empty",
			payload:      `{}`,
			wantEmail:    "",
			wantPassword: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var creds Credentials
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &creds))
			assert.Equal(t, tt.wantEmail, creds.Email)
			assert.Equal(t, tt.wantPassword, creds.Password)
		})
	}
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	user := User{FullName: "Jane Buyer", Email: "jane@example.com", Password: "hash"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
}
