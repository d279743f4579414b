// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/stackit/auth"
	"github.com/danielhkuo/stackit/models"
)

// ValidationError carries one message per rejected field, keyed by form field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

type RegisterForm struct {
	Username string `form:"username" validate:"required,username_len"`
	Password string `form:"password" validate:"required,password_len"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type QuestionForm struct {
	Title       string `form:"title" validate:"required,title_len"`
	Description string `form:"description" validate:"required"`
}

type AnswerForm struct {
	Content string `form:"content" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	v.RegisterAlias("username_len", fmt.Sprintf("min=%d,max=%d", models.UsernameMinLen, models.UsernameMaxLen))
	v.RegisterAlias("password_len", fmt.Sprintf("min=%d", models.PasswordMinLen))
	v.RegisterAlias("title_len", fmt.Sprintf("max=%d", models.TitleMaxLen))
	return v
}

// BindRegister reads and validates a registration submission
func BindRegister(r *http.Request) (RegisterForm, error) {
	f := RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	err := check(f)
	if len(f.Password) > auth.MaxPasswordBytes {
		err = addField(err, "password", fmt.Sprintf("Field cannot be longer than %d bytes.", auth.MaxPasswordBytes))
	}
	return f, err
}

// BindLogin reads and validates a login submission
func BindLogin(r *http.Request) (LoginForm, error) {
	f := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	return f, check(f)
}

// BindQuestion reads and validates an ask submission
func BindQuestion(r *http.Request) (QuestionForm, error) {
	f := QuestionForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
	}
	return f, check(f)
}

// BindAnswer reads and validates an answer submission
func BindAnswer(r *http.Request) (AnswerForm, error) {
	f := AnswerForm{Content: r.PostFormValue("content")}
	return f, check(f)
}

// check runs the struct rules. Whitespace-only values count as missing.
func check(form any) error {
	fields := make(map[string]string)

	err := validate.Struct(form)
	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}

	rv := reflect.ValueOf(form)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !strings.Contains(sf.Tag.Get("validate"), "required") {
			continue
		}
		name := sf.Tag.Get("form")
		if _, bad := fields[name]; bad {
			continue
		}
		if strings.TrimSpace(rv.Field(i).String()) == "" {
			fields[name] = "This field is required."
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func addField(err error, name, msg string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if _, ok := verr.Fields[name]; !ok {
			verr.Fields[name] = msg
		}
		return verr
	}
	if err != nil {
		return err
	}
	return &ValidationError{Fields: map[string]string{name: msg}}
}

// message words a failed rule. Aliases report the rule that failed inside them.
func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
