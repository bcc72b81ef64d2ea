package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at the file, and where known the position or key,
// of a bad configuration value.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	// Field is the config key, e.g. "bullet" or "ignore[2]".
	Field string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// validate reports fields by their koanf key rather than the Go name.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	return v
}()

// ValidateYAMLSyntax checks that filePath parses as YAML. Missing and blank
// files are valid since they leave the defaults in place.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case errors.Is(err, os.ErrPermission):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}
	line, column := yamlPosition(err.Error())
	return &ValidationError{
		FilePath: filePath,
		Line:     line,
		Column:   column,
		Message:  yamlReason(err.Error()),
	}
}

// ValidateConfigValues checks cfg against its validate tags and compiles
// every ignore pattern. The first problem found is returned.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				FilePath: filePath,
				Field:    fieldErrs[0].Field(),
				Message:  describeFieldError(fieldErrs[0]),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return &ValidationError{
				FilePath: filePath,
				Field:    fmt.Sprintf("ignore[%d]", i),
				Message:  fmt.Sprintf("invalid glob pattern %q", pattern),
			}
		}
	}
	return nil
}

// yamlPosition extracts the line and column from a yaml.v3 message such as
// "yaml: line 5: could not find expected ':'". It returns 0, 0 when there is
// no position.
func yamlPosition(msg string) (line, column int) {
	if n, _ := fmt.Sscanf(msg, "yaml: line %d: column %d:", &line, &column); n == 2 {
		return line, column
	}
	if n, _ := fmt.Sscanf(msg, "yaml: line %d:", &line); n == 1 {
		return line, 1
	}
	return 0, 0
}

// yamlReason strips the "yaml: line N:" prefix.
func yamlReason(msg string) string {
	if !strings.HasPrefix(msg, "yaml:") {
		return msg
	}
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[idx+2:]
	}
	return msg
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
