// Package registration validates registration submissions and persists new
// users through a database.Store.
package registration

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user-registration/app/internal/models"
)

// Field identifies a form field. The values match the form input names.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm_password"
)

// Fields lists the form fields in evaluation and display order.
var Fields = []Field{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}

// Validation messages shown to the user.
const (
	MsgNameRequired            = "Name is required"
	MsgEmailRequired           = "Email is required"
	MsgEmailInvalid            = "Invalid email format"
	MsgEmailTaken              = "Email is already registered"
	MsgPasswordRequired        = "Password is required"
	MsgPasswordTooShort        = "Password must be at least 8 characters long"
	MsgPasswordNoSpecial       = "Password must contain at least one special character"
	MsgConfirmPasswordRequired = "Confirm password is required"
	MsgPasswordsMismatch       = "Passwords do not match"
)

const (
	minPasswordLength = 8
	specialCharacters = "@$!%*#?&"
)

// rule is a single predicate on a submission. A failing rule with halt set
// stops evaluation of the remaining rules of its field.
type rule struct {
	message string
	ok      func(s models.Submission) bool
	halt    bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var rules = map[Field][]rule{
	FieldName: {
		{message: MsgNameRequired, halt: true, ok: func(s models.Submission) bool {
			return strings.TrimSpace(s.Name) != ""
		}},
	},
	FieldEmail: {
		{message: MsgEmailRequired, halt: true, ok: func(s models.Submission) bool {
			return strings.TrimSpace(s.Email) != ""
		}},
		{message: MsgEmailInvalid, ok: func(s models.Submission) bool {
			return validate.Var(strings.TrimSpace(s.Email), "email") == nil
		}},
	},
	FieldPassword: {
		{message: MsgPasswordRequired, halt: true, ok: func(s models.Submission) bool {
			return s.Password != ""
		}},
		{message: MsgPasswordTooShort, halt: true, ok: func(s models.Submission) bool {
			return len(s.Password) >= minPasswordLength
		}},
		{message: MsgPasswordNoSpecial, ok: func(s models.Submission) bool {
			return strings.ContainsAny(s.Password, specialCharacters)
		}},
	},
	FieldConfirmPassword: {
		{message: MsgConfirmPasswordRequired, halt: true, ok: func(s models.Submission) bool {
			return s.ConfirmPassword != ""
		}},
		{message: MsgPasswordsMismatch, ok: func(s models.Submission) bool {
			return s.Password == s.ConfirmPassword
		}},
	},
}

// FieldErrors maps a field to its failing messages in rule order.
type FieldErrors map[Field][]string

// Validate runs every field rule against s. It has no side effects.
func Validate(s models.Submission) FieldErrors {
	errs := FieldErrors{}
	for _, f := range Fields {
		for _, r := range rules[f] {
			if r.ok(s) {
				continue
			}
			errs[f] = append(errs[f], r.message)
			if r.halt {
				break
			}
		}
	}
	return errs
}

// Empty reports whether no field failed.
func (e FieldErrors) Empty() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// First returns the first failing message of f, or "".
func (e FieldErrors) First(f Field) string {
	if msgs := e[f]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// FirstPerField keeps only the first message of each failing field.
func (e FieldErrors) FirstPerField() map[Field]string {
	out := make(map[Field]string, len(e))
	for f := range e {
		if msg := e.First(f); msg != "" {
			out[f] = msg
		}
	}
	return out
}

// Join concatenates every message in field order, separated by ", ".
func (e FieldErrors) Join() string {
	var all []string
	for _, f := range Fields {
		all = append(all, e[f]...)
	}
	return strings.Join(all, ", ")
}
