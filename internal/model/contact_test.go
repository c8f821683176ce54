package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateContact_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input CreateContact
		want  []string
	}{
		{
			name:  "valid",
			input: CreateContact{Name: "Alice", Email: "a@x.com", Content: "Hi"},
		},
		{
			name:  "email format is not checked",
			input: CreateContact{Name: "Alice", Email: "not-an-email", Content: "Hi"},
		},
		{
			name:  "all empty",
			input: CreateContact{},
			want:  []string{"name", "email", "content"},
		},
		{
			name:  "only email empty",
			input: CreateContact{Name: "Alice", Content: "Hi"},
			want:  []string{"email"},
		},
		{
			name:  "name and content empty",
			input: CreateContact{Email: "a@x.com"},
			want:  []string{"name", "content"},
		},
		{
			name:  "name too long",
			input: CreateContact{Name: strings.Repeat("a", 31), Email: "a@x.com", Content: "Hi"},
			want:  []string{"name"},
		},
		{
			name:  "name at limit counts runes",
			input: CreateContact{Name: strings.Repeat("あ", 30), Email: "a@x.com", Content: "Hi"},
		},
		{
			name:  "email too long",
			input: CreateContact{Name: "Alice", Email: strings.Repeat("e", 256), Content: "Hi"},
			want:  []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.input.Validate()
			if len(tt.want) == 0 {
				assert.Empty(t, errs)
				return
			}
			got := make([]string, 0, len(errs))
			for _, fe := range errs {
				got = append(got, fe.Name)
				assert.NotEmpty(t, fe.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateContact_ValidateMessages(t *testing.T) {
	errs := CreateContact{Name: strings.Repeat("a", 31)}.Validate()

	assert.Equal(t, []FieldError{
		{Name: "name", Message: "ensure this value has at most 30 characters"},
		{Name: "email", Message: "field required"},
		{Name: "content", Message: "field required"},
	}, errs)
}

func TestCreateContact_Complete(t *testing.T) {
	assert.True(t, CreateContact{Name: "a", Email: "b", Content: "c"}.Complete())
	assert.False(t, CreateContact{Name: "a", Email: "b"}.Complete())
	assert.False(t, CreateContact{Email: "b", Content: "c"}.Complete())
	assert.False(t, CreateContact{}.Complete())
}

func TestCreateContact_ToContact(t *testing.T) {
	in := CreateContact{Name: " Alice ", Email: "a@x.com", Content: "Hi\n"}
	c := in.ToContact()

	assert.Zero(t, c.ID)
	assert.Equal(t, " Alice ", c.Name)
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, "Hi\n", c.Content)
}

func TestContactFields_Missing(t *testing.T) {
	empty, alice := "", "Alice"

	assert.Empty(t, ContactFields{Name: &alice, Email: &empty, Content: &empty}.Missing())

	assert.Equal(t, []FieldError{
		{Name: "email", Message: "field required"},
	}, ContactFields{Name: &alice, Content: &empty}.Missing())

	assert.Equal(t, []FieldError{
		{Name: "name", Message: "field required"},
		{Name: "email", Message: "field required"},
		{Name: "content", Message: "field required"},
	}, ContactFields{}.Missing())
}

func TestContactFields_Submission(t *testing.T) {
	name, content := "Alice", "Hi"

	got := ContactFields{Name: &name, Content: &content}.Submission()
	assert.Equal(t, CreateContact{Name: "Alice", Content: "Hi"}, got)
}
