package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://league@localhost/league?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "secret")
	for _, name := range []string{
		"SERVER_PORT", "ROUND_WEEKDAY", "DWZ_ENCODING", "ALLOWED_ORIGINS",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, time.Friday, cfg.RoundWeekday)
	assert.Equal(t, EncodingLatin1, cfg.DWZEncoding)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ROUND_WEEKDAY", "Tuesday")
	t.Setenv("DWZ_ENCODING", "UTF-8")
	t.Setenv("ALLOWED_ORIGINS", "https://league.example.org/, http://localhost:5173")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "reports")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://files.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, time.Tuesday, cfg.RoundWeekday)
	assert.Equal(t, EncodingUTF8, cfg.DWZEncoding)
	assert.Equal(t, []string{"https://league.example.org", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.R2.Enabled())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing database", env: map[string]string{"DATABASE_URL": ""}, want: "DATABASE_URL"},
		{name: "missing jwt key", env: map[string]string{"JWT_SECRET_KEY": ""}, want: "JWT_SECRET_KEY"},
		{name: "port not a number", env: map[string]string{"SERVER_PORT": "http"}, want: "SERVER_PORT"},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}, want: "SERVER_PORT"},
		{name: "weekday", env: map[string]string{"ROUND_WEEKDAY": "caturday"}, want: "ROUND_WEEKDAY"},
		{name: "encoding", env: map[string]string{"DWZ_ENCODING": "cp1252"}, want: "DWZ_ENCODING"},
		{name: "partial archive", env: map[string]string{"R2_BUCKET_NAME": "reports"}, want: "R2_ACCOUNT_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" monday ")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, d)
}
