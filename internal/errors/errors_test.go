package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Invalid host entry 'badentry'", "Expected format: 192.168.55.55,friendlyname")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Invalid host entry 'badentry'", err.Message)
	assert.Equal(t, "Expected format: 192.168.55.55,friendlyname", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestError_Layout(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		lines []string
	}{
		{
			name:  "message only",
			err:   New(ErrConfig, "No hosts provided", ""),
			lines: []string{"✗ No hosts provided", ""},
		},
		{
			name:  "message and suggestion",
			err:   New(ErrConfig, "Unknown screen 'disk'", "Valid screens: system, network, clock"),
			lines: []string{"✗ Unknown screen 'disk'", "", "  Valid screens: system, network, clock", ""},
		},
		{
			name: "cause sits between message and suggestion",
			err: WrapWithCode(errors.New("open /dev/i2c-1: permission denied"), ErrDisplay,
				"Cannot open I2C bus 1", "Add your user to the i2c group"),
			lines: []string{
				"✗ Cannot open I2C bus 1",
				"",
				"  open /dev/i2c-1: permission denied",
				"",
				"  Add your user to the i2c group",
				"",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lines, strings.Split(tt.err.Error(), "\n"))
		})
	}
}

func TestWrapWithCode_Unwraps(t *testing.T) {
	cause := errors.New("i2c: no such bus")
	err := WrapWithCode(cause, ErrDisplay, "Cannot open I2C bus 7", "")

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	var structured *Error
	require.True(t, errors.As(err, &structured))
	assert.Equal(t, ErrDisplay, structured.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Screen index 5 out of range", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrDisplay))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{"exit error", NewExitError(1), 1, true},
		{"zero exit error", NewExitError(0), 0, true},
		{"structured error", New(ErrConfig, "bad", ""), 0, false},
		{"plain error", errors.New("boom"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
	assert.Equal(t, "exit code 1", NewExitError(1).Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(New(ErrConfig, "Invalid host entry", "")))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 3, ExitCode(NewExitError(3)))
}
