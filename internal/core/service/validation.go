package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/pkg/metrics"
)

var (
	titleRule   = fmt.Sprintf("required,min=%d", domain.MinTitleLength)
	contentRule = fmt.Sprintf("required,min=%d", domain.MinContentLength)
)

// postValidator checks the title and content of a post. Nil fields are
// skipped so the same rules serve create and partial update.
type postValidator struct {
	v *validator.Validate
}

func newPostValidator() *postValidator {
	return &postValidator{v: validator.New()}
}

func (pv *postValidator) check(title, content *string) error {
	fields := make(map[string]string)
	if title != nil {
		if msg := pv.field("Title", strings.TrimSpace(*title), titleRule); msg != "" {
			fields["title"] = msg
		}
	}
	if content != nil {
		if msg := pv.field("Content", strings.TrimSpace(*content), contentRule); msg != "" {
			fields["content"] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}

	for f := range fields {
		metrics.ValidationFailuresTotal.WithLabelValues(f).Inc()
	}
	return &domain.ValidationError{Fields: fields}
}

func (pv *postValidator) field(label, value, rule string) string {
	err := pv.v.Var(value, rule)
	if err == nil {
		return ""
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return label + " is invalid"
	}
	switch fe := ve[0]; fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, fe.Tag())
	}
}
