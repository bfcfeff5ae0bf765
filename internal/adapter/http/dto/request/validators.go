package request

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/pkg"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the domain tags (priority, order_status) to gin's validator
// and makes field errors report json names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			return entities.Priority(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return entities.OrderStatus(fl.Field().String()).Valid()
		})
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// FieldErrors flattens a binding error into per-field details.
// It returns nil when err is not a validation error (malformed JSON, wrong types).
func FieldErrors(err error) []pkg.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]pkg.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, pkg.FieldError{Field: fieldPath(fe), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// fieldPath drops the root struct name: "CreateOrderRequest.job_items[0].units" -> "job_items[0].units".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
