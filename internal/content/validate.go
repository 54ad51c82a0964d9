package content

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var errNotNumeric = errors.New("must be numeric")

var missingMessages = map[string]string{
	"url":           "URL is required",
	"pdfUrl":        "PDF URL is required",
	"email":         "Email is required",
	"text":          "Text is required",
	"phoneNumber":   "Phone number is required",
	"ssid":          "SSID is required",
	"walletAddress": "Wallet address is required",
	"name":          "Name is required",
	"latitude":      "Latitude and longitude are required",
	"longitude":     "Latitude and longitude are required",
}

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Type  RecordType
	Field string
}

func (e *MissingFieldError) Error() string {
	if msg, ok := missingMessages[e.Field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidFieldError reports a field holding a value of the wrong kind.
type InvalidFieldError struct {
	Field string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s %v", e.Field, e.Err)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// validator caches struct metadata, one instance serves all records.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation("coordinate", isCoordinate); err != nil {
		panic(err)
	}
	return v
}

func isCoordinate(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateRecord(t RecordType, record Record) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("error validating %s record: %w", t, err)
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return &MissingFieldError{Type: t, Field: fe.Field()}
	}
	return &InvalidFieldError{Field: fe.Field(), Err: errNotNumeric}
}
