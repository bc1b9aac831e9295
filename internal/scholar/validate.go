// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/scholar-search/pkg/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
			return slices.Contains(types.SortOrders, fl.Field().String())
		})
		validate = v
	})
	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// ValidateRequest checks a request struct and returns a *ValidationError
// describing the first failing field.
func ValidateRequest(req any) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "notblank", "required":
		return &ValidationError{Field: field, Message: "must not be empty"}
	case "sortorder":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not one of %s", fe.Value(), strings.Join(types.SortOrders, ", "))}
	case "min":
		return &ValidationError{Field: field, Message: "must be at least " + fe.Param()}
	case "max":
		return &ValidationError{Field: field, Message: "must be at most " + fe.Param()}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

// ValidatePaperID rejects a blank paper identifier.
func ValidatePaperID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "paper_id", Message: "must not be empty"}
	}
	return nil
}
