package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/coastalbeacon/beacon/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

var registerOnce sync.Once

// RegisterValidations adds the username, mobile and email_shape tags to gin's
// validator. Safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// report json names ("gkAnswers") instead of Go field names
		v.RegisterTagNameFunc(jsonFieldName)

		_ = v.RegisterValidation("username", stringRule(user.ValidUsername))
		_ = v.RegisterValidation("mobile", stringRule(user.ValidMobile))
		_ = v.RegisterValidation("email_shape", stringRule(user.ValidEmail))
	})
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}

// BindJSON decodes and validates the body into out. On failure it writes a
// 400 and returns false. missingMessage is the top-level message used when a
// required field is absent; any other rule failure reads "Invalid request body".
func BindJSON(ctx *gin.Context, out interface{}, missingMessage string) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
		return false
	}

	details := parseBindError(err)

	if missingMessage != "" && hasRequiredFailure(err) {
		RespondBadRequest(ctx, "missing_fields", missingMessage, details)
		return false
	}

	RespondBadRequest(ctx, "invalid_request", "Invalid request body", details)

	return false
}

func hasRequiredFailure(err error) bool {
	var validatorError validator.ValidationErrors

	if !errors.As(err, &validatorError) {
		return false
	}

	for _, fieldError := range validatorError {
		if fieldError.Tag() == "required" {
			return true
		}
	}

	return false
}

func parseBindError(err error) interface{} {
	// validator errors (struct bind tags)

	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			rule := fieldError.Tag()
			param := fieldError.Param()

			fields = append(fields, FieldError{
				Field:   fieldError.Field(),
				Rule:    rule,
				Param:   param,
				Message: validationMessage(rule, param),
			})
		}
		return gin.H{"fields": fields}
	}

	// in the event of bad json

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return gin.H{
			"json": "invalid_json_syntax",
		}
	}

	// in the event of a type mismatch

	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		field := strings.TrimSpace(unmatchedTypeError.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", unmatchedTypeError.Type.String()),
				},
			},
		}
	}

	if errors.Is(err, io.EOF) {
		return gin.H{"json": "empty_body"}
	}

	// anything else stays generic; decoder errors can echo input back
	return gin.H{"json": "unreadable_body"}
}

func jsonFieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "username":
		return user.UsernameHint
	case "mobile":
		return user.MobileHint
	case "email_shape":
		return user.EmailHint
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
