// Package forms holds the declarative input schemas of every create/update
// dialog and turns validator failures into field-level messages.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"backoffice/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	phoneRe = regexp.MustCompile(`^0\d{9}$`)

	// now is replaced in tests.
	now = time.Now

	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "phone_vn", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
			_, err := parseDate(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "notpast", func(fl validator.FieldLevel) bool {
			d, err := parseDate(fl.Field().String())
			return err == nil && !d.Before(today())
		})
		mustRegister(v, "future", func(fl validator.FieldLevel) bool {
			d, err := parseDate(fl.Field().String())
			return err == nil && d.After(today())
		})
		v.RegisterStructValidation(consignmentPeriod, Consignment{})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register %s: %v", tag, err))
	}
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
}

func today() time.Time {
	t := now().In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Validate checks v against its `validate` tags. Failures come back as a
// domain.ValidationError keyed by json field name.
func Validate(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ValidationError{Msg: "invalid form", Err: err}
	}
	fields := make(map[string]string, len(verrs))
	msgs := messagesOf(v)
	for _, fe := range verrs {
		key := fe.Field()
		if _, dup := fields[key]; dup {
			continue
		}
		if m, ok := msgs[fe.StructField()]; ok {
			fields[key] = m
			continue
		}
		fields[key] = defaultMessage(fe)
	}
	return domain.ValidationError{Fields: fields, Err: err}
}

// Decode reads one JSON object into dst and validates it. Unknown keys are
// rejected when strict is set.
func Decode(r io.Reader, dst any, strict bool) error {
	dec := json.NewDecoder(r)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ValidationError{Msg: "empty body"}
		}
		return domain.ValidationError{Msg: "invalid payload: " + err.Error(), Err: err}
	}
	return Validate(dst)
}

// messagesOf collects the `msg` tags of a struct (or pointer to struct).
func messagesOf(v any) map[string]string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if m := f.Tag.Get("msg"); m != "" {
			out[f.Name] = m
		}
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "phone_vn":
		return "must be 10 digits starting with 0"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "notpast":
		return "must not be in the past"
	case "future":
		return "must be after today"
	case "nefield":
		return "must differ from " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	}
	return "is invalid"
}
