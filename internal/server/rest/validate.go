package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// fieldMessages overrides the generic message for a field and rule.
var fieldMessages = map[string]string{
	"name.required":         "Trip name is required",
	"name.min":              "Trip name must be at least 3 characters long",
	"name.max":              "Trip name must not exceed 100 characters",
	"destination.required":  "Destination is required",
	"destination.min":       "Destination must be at least 2 characters long",
	"destination.max":       "Destination must not exceed 100 characters",
	"start_date.required":   "Start date is required",
	"start_date.datetime":   "Start date must be in ISO format (YYYY-MM-DD)",
	"end_date.required":     "End date is required",
	"end_date.datetime":     "End date must be in ISO format (YYYY-MM-DD)",
	"amount.required":       "Amount is required",
	"amount.gt":             "Amount must be a positive number",
	"category.required":     "Category is required",
	"category.oneof":        "Category must be one of: Food, Transport, Accommodation, Activities, Shopping, Other",
	"date.required":         "Date is required",
	"date.datetime":         "Date must be in ISO format (YYYY-MM-DD)",
	"comment_text.required": "Comment text is required",
	"password.maxbytes":     "Password must not exceed 72 bytes",
}

type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// nullable fields validate as their value; null or absent skips omitempty rules
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if n, ok := f.Interface().(interface{ ValueOrNil() any }); ok {
			return n.ValueOrNil()
		}
		return nil
	}, models.Nullable[float64]{}, models.Nullable[string]{})
	// max counts runes; bcrypt limits bytes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return &requestValidator{v: v}
}

// Struct validates x and reports every failed field at once.
func (rv *requestValidator) Struct(x any) error {
	err := rv.v.Struct(x)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{Message: "Validation failed"}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	name := fmt.Sprintf("%q", fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "min":
		if isString {
			return fmt.Sprintf("%s length must be at least %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", name, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must not exceed %s bytes", name, fe.Param())
	case "gt":
		return name + " must be a positive number"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return name + " must be in ISO format (YYYY-MM-DD)"
	default:
		return name + " is invalid"
	}
}
