package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestValidator_Struct(t *testing.T) {
	type input struct {
		Title  string      `json:"title" validate:"notblank"`
		Note   null.String `json:"note" validate:"omitempty,max=5"`
		Rating null.Int    `json:"rating" validate:"omitempty,min=1"`
	}

	tests := []struct {
		name string
		in   input
		want []FieldError
	}{
		{name: "valid", in: input{Title: "x"}},
		{name: "valid optionals", in: input{Title: "x", Note: null.StringFrom("short"), Rating: null.IntFrom(3)}},
		{
			name: "blank title",
			in:   input{Title: " \t"},
			want: []FieldError{{Field: "title", Error: "this field cannot be blank"}},
		},
		{
			name: "optionals out of bounds",
			in:   input{Title: "x", Note: null.StringFrom("too long"), Rating: null.IntFrom(-2)},
			want: []FieldError{
				{Field: "note", Error: "note must be a maximum of 5 characters in length"},
				{Field: "rating", Error: "rating must be 1 or greater"},
			},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Struct() error = %v; want *ValidationError", err)
			}
			assert.Equal(t, tt.want, vErr.Fields)
			assert.Equal(t, "invalid input", vErr.Error())
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello", CleanString("  Hello\n"))
	assert.Equal(t, "hello", CleanString(" HeLLo ", true))
}
