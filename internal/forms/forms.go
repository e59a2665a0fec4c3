// Package forms validates submitted form data before any store is touched.
//
// Field rules live in validate struct tags (go-playground/validator). Rules
// that need the database, such as username and email uniqueness, run only
// after a field has passed its tag rules.
package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	UsernameTakenMsg = "That username is taken. Please choose a different one."
	EmailTakenMsg    = "That email is taken. Please choose a different one."
)

// Errors maps a form field name to its messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// TakenMessage is the message for a uniqueness failure on field.
func TakenMessage(field string) string {
	switch field {
	case "username":
		return UsernameTakenMsg
	case "email":
		return EmailTakenMsg
	}
	return "That value is taken."
}

// UniqueChecker answers uniqueness questions against the credential store.
type UniqueChecker interface {
	UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type Validator struct {
	validate *validator.Validate
	users    UniqueChecker
}

func New(users UniqueChecker) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report errors under the submitted field name, not the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v, users: users}
}

// check runs the tag rules of form and collects their messages.
func (v *Validator) check(form any) Errors {
	errs := Errors{}

	err := v.validate.Struct(form)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), message(fe))
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "email":
		return "Invalid email address."
	case "eqfield":
		return "Field must be equal to password."
	}
	return "Invalid value."
}

func (v *Validator) checkUnique(ctx context.Context, errs Errors, username, email string, exceptID int64) error {
	if !errs.Has("username") {
		taken, err := v.users.UsernameTaken(ctx, username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("username", UsernameTakenMsg)
		}
	}
	if !errs.Has("email") {
		taken, err := v.users.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("email", EmailTakenMsg)
		}
	}
	return nil
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// checkbox reads an HTML checkbox; any of the usual truthy encodings count.
func checkbox(r *http.Request, name string) bool {
	switch strings.ToLower(r.PostFormValue(name)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}
