// Package validation wires go-playground/validator with English messages.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator bundles a validator instance with its English translator.
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

var (
	defaultOnce sync.Once
	defaultVal  *Validator
)

// New builds a Validator that reports fields by their `label` tag.
func New() *Validator {
	v := govalidator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("label"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &Validator{validate: v, trans: trans}
}

// Default returns the shared process Validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultVal = New()
	})
	return defaultVal
}

// Struct validates s and returns the raw validator error.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Translate flattens err into "field message" lines, sorted by field.
func (v *Validator) Translate(err error) string {
	if err == nil {
		return ""
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, fe.Translate(v.trans))
	}
	sort.Strings(messages)
	return strings.Join(messages, "; ")
}
