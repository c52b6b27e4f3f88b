package handler

import (
    "reflect"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/iliyamo/hotel-booking/internal/model"
)

// Validator adapts go-playground/validator to echo.Validator.  Field names
// in errors are the JSON names clients send.
type Validator struct {
    v *validator.Validate
}

// NewValidator registers the date type and the afterdate rule
// (`validate:"afterdate=StartDate"`, strictly later than the named field).
func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        if name == "" {
            return f.Name
        }
        return name
    })
    // A zero Date validates as missing, so `required` works on it.
    v.RegisterCustomTypeFunc(func(f reflect.Value) any {
        d, ok := f.Interface().(model.Date)
        if !ok || d.IsZero() {
            return nil
        }
        return d.Time
    }, model.Date{})
    _ = v.RegisterValidation("afterdate", afterDate)
    return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error { return cv.v.Struct(i) }

func afterDate(fl validator.FieldLevel) bool {
    this, ok := asTime(fl.Field())
    if !ok {
        return true // required reports missing values
    }
    other, ok := asTime(fl.Parent().FieldByName(fl.Param()))
    if !ok {
        return true
    }
    return this.After(other)
}

func asTime(v reflect.Value) (time.Time, bool) {
    if !v.IsValid() {
        return time.Time{}, false
    }
    switch t := v.Interface().(type) {
    case time.Time:
        return t, !t.IsZero()
    case model.Date:
        return t.Time, !t.IsZero()
    case *model.Date:
        if t == nil {
            return time.Time{}, false
        }
        return t.Time, !t.IsZero()
    }
    return time.Time{}, false
}
