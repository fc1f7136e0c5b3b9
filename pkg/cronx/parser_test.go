package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardParser(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"0 */5 * * * *", false},
		{"@every 1m", false},
		{"@hourly", false},
		{"*/5 * * * *", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvery(t *testing.T) {
	spec, err := Every(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "@every 1m0s", spec)

	sched, err := StandardParser().Parse(spec)
	require.NoError(t, err)
	base := time.Date(2025, 1, 1, 10, 0, 30, 0, time.UTC)
	assert.Equal(t, base.Add(time.Minute), sched.Next(base))

	_, err = Every(500 * time.Millisecond)
	assert.Error(t, err)
}
