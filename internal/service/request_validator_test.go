package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "taskpad/internal/errors"
)

func TestValidateRegisterUser(t *testing.T) {
	assert.NoError(t, ValidateRegisterUser(RegisterUserInput{Email: "a@x.com"}))

	err := ValidateRegisterUser(RegisterUserInput{})
	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"email"}, ve.Fields)
	assert.Contains(t, ve.Error(), "email")
}

func TestValidateCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateTaskInput
		wantFields []string
	}{
		{
			name:  "valid",
			input: CreateTaskInput{Title: "Buy milk", UserID: "u1"},
		},
		{
			name:       "empty title",
			input:      CreateTaskInput{Title: "", UserID: "u1"},
			wantFields: []string{"title"},
		},
		{
			name:       "empty userId",
			input:      CreateTaskInput{Title: "Buy milk"},
			wantFields: []string{"userId"},
		},
		{
			name:       "everything missing",
			input:      CreateTaskInput{},
			wantFields: []string{"title", "userId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateTask(tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *apperrors.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.ElementsMatch(t, tt.wantFields, ve.Fields)
		})
	}
}

func TestValidateListTasks(t *testing.T) {
	assert.NoError(t, ValidateListTasks("u1"))

	err := ValidateListTasks("")
	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"userId"}, ve.Fields)
}
