package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizor98/albertonet-sub000/internal/contact"
	"github.com/tizor98/albertonet-sub000/internal/i18n"
)

func validMessage() contact.Message {
	return contact.Message{
		Name:    "Alice Example",
		Email:   "alice@example.com",
		Message: "I would like to talk about a project.",
	}
}

func newValidator(t *testing.T) *contact.Validator {
	t.Helper()
	bundle, err := i18n.Default("en")
	require.NoError(t, err)
	return contact.NewValidator(bundle)
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, newValidator(t).Validate("en", validMessage()))
}

func TestValidate_IsCompanyOptional(t *testing.T) {
	msg := validMessage()
	msg.IsCompany = true
	assert.Empty(t, newValidator(t).Validate("en", msg))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		mutate func(*contact.Message)
		field  string
	}{
		{name: "empty name", mutate: func(m *contact.Message) { m.Name = "" }, field: "name"},
		{name: "short name", mutate: func(m *contact.Message) { m.Name = "A" }, field: "name"},
		{name: "empty email", mutate: func(m *contact.Message) { m.Email = "" }, field: "email"},
		{name: "invalid email", mutate: func(m *contact.Message) { m.Email = "not-an-email" }, field: "email"},
		{name: "empty message", mutate: func(m *contact.Message) { m.Message = "" }, field: "message"},
		{name: "short message", mutate: func(m *contact.Message) { m.Message = "hi" }, field: "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.mutate(&msg)

			errs := v.Validate("en", msg)
			require.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
			assert.NotEmpty(t, errs[tt.field])
		})
	}
}

func TestValidate_CollectsEveryFailingField(t *testing.T) {
	errs := newValidator(t).Validate("en", contact.Message{})
	assert.Len(t, errs, 3)
}

func TestValidate_LocalizedMessages(t *testing.T) {
	v := newValidator(t)
	msg := validMessage()
	msg.Email = "nope"

	en := v.Validate("en", msg)
	assert.Equal(t, "Please enter a valid email address", en["email"])

	es := v.Validate("es", msg)
	assert.Equal(t, "Por favor introduce un correo válido", es["email"])

	fr := v.Validate("fr", msg)
	assert.Equal(t, "Please enter a valid email address", fr["email"], "unknown locale falls back to the default")
}
