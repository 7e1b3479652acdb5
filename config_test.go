package lockout_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-lockout"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  lockout.Config
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			config:  lockout.DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "zero attempts",
			config:  lockout.Config{MaxAttempts: 0, LockDuration: time.Minute},
			wantErr: true,
		},
		{
			name:    "zero lock duration",
			config:  lockout.Config{MaxAttempts: 3, LockDuration: 0},
			wantErr: true,
		},
		{
			name:    "custom policy",
			config:  lockout.Config{MaxAttempts: 3, LockDuration: time.Hour},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := lockout.DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockDuration)
}
