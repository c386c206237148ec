// Package contact validates contact-form messages and hands them to the
// external notification function.
package contact

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tizor98/albertonet-sub000/internal/i18n"
)

// Message is the structured notification handed to the messenger.
type Message struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"required,min=10,max=5000"`
	IsCompany bool   `json:"isCompany"`
}

// MessageService is the contract the external email component satisfies:
// deliver the notification, or fail with a transport error.
type MessageService interface {
	SendContactNotification(ctx context.Context, msg Message) error
}

// errorNamespace is the dictionary sub-tree holding validation messages.
const errorNamespace = "contact.error"

// Validator checks messages and localizes field errors.
type Validator struct {
	validate *validator.Validate
	bundle   *i18n.Bundle
}

func NewValidator(bundle *i18n.Bundle) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v, bundle: bundle}
}

// Validate returns one localized message per failing field, keyed by JSON
// field name. An empty result means the message is valid.
func (v *Validator) Validate(locale string, msg Message) map[string]string {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"message": v.localize(locale, "generic")}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = v.localize(locale, fe.Field())
	}
	return out
}

func (v *Validator) localize(locale, key string) string {
	if msg, ok := v.bundle.ResolveIn(locale, errorNamespace, key); ok {
		return msg
	}
	msg, _ := v.bundle.ResolveIn(locale, errorNamespace, "generic")
	return msg
}
