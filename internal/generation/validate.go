package generation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// required, and not just whitespace
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool { //nolint:errcheck // static tag name
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// local checks run before any network call
func validateRequest(req *Request) error {
	if req == nil {
		return errors.New("request is nil")
	}

	if err := validate.Struct(req); err != nil {
		return describeValidation(err)
	}

	if req.HasSchema() {
		if err := ValidateSchema(req.ResponseSchema); err != nil {
			return fmt.Errorf("response_json_schema: %w", err)
		}
	}

	return nil
}

type uploadInput struct {
	FileName string `validate:"notblank"`
}

func validateUpload(fileName string) error {
	if err := validate.Struct(uploadInput{FileName: fileName}); err != nil {
		return describeValidation(err)
	}

	return nil
}

// checks the URL an upload answered with; a reference the generate call
// would reject is the service's fault, not the caller's
func validateFileURL(fileURL string) error {
	if err := validate.Var(fileURL, "required,http_url"); err != nil {
		return fmt.Errorf("file_url must be an absolute http(s) URL, got %q", fileURL)
	}

	return nil
}

// flattens validator errors into "field: rule" messages
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "notblank":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", fieldName(fe)))
		case "http_url":
			msgs = append(msgs, fmt.Sprintf("%s must be an http(s) URL, got %q", fieldName(fe), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fieldName(fe), fe.Tag()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}

func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Prompt":
		return "prompt"
	case "FileName":
		return "file name"
	}

	if strings.HasPrefix(fe.StructField(), "Attachments") {
		return "file_urls" + strings.TrimPrefix(fe.StructField(), "Attachments")
	}

	return fe.Field()
}
