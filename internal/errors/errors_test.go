package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: fmt.Errorf("boom"), want: "Error: boom"},
		{name: "validation", err: Validation("name", "cannot be empty"), want: "Error: name: cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.err))
		})
	}
}

func TestFormatf(t *testing.T) {
	assert.Equal(t, "Error: goal 25 out of range", Formatf("goal %d out of range", 25))
}

func TestClassification(t *testing.T) {
	wrapped := fmt.Errorf("add habit: %w", Validation("targetCount", "must be positive"))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsValidation(ErrNotFound))

	p := Persistence("habits", fmt.Errorf("unexpected EOF"))
	assert.True(t, Is(p, ErrPersistence))
	assert.Contains(t, p.Error(), `"habits"`)

	perm := Permission(fmt.Errorf("exact alarms not allowed"))
	assert.True(t, Is(perm, ErrPermission))

	var ve *ValidationError
	assert.True(t, As(wrapped, &ve))
	assert.Equal(t, "targetCount", ve.Field)
}
