package parser

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nathanvale/cortex/internal/models"
)

var (
	dateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
)

const dateLayout = "2006-01-02"

// fields holds the recognized keys after preprocessing, before validation.
// The json tags name the keys in validation errors.
type fields struct {
	Title   any `json:"title"`
	Type    any `json:"type"`
	Project any `json:"project"`
	Status  any `json:"status"`
	Tags    any `json:"tags"`
	Created any `json:"created"`
	Updated any `json:"updated"`
}

func (f *fields) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.By(isScalar)),
		validation.Field(&f.Type, validation.By(isScalar)),
		validation.Field(&f.Project, validation.By(isScalar)),
		validation.Field(&f.Status, validation.By(isScalar)),
		validation.Field(&f.Tags, validation.By(isList)),
		validation.Field(&f.Created, validation.By(isString), validation.Match(dateRe).Error("must be in YYYY-MM-DD format")),
		validation.Field(&f.Updated, validation.By(isString), validation.Match(dateRe).Error("must be in YYYY-MM-DD format")),
	)
}

// Validate checks raw frontmatter against the recognized-field schema and
// returns it coerced: dates as YYYY-MM-DD strings, scalars as strings, tags
// as a string list, unknown keys untouched. A nil value counts as absent.
func Validate(raw map[string]any) (models.Frontmatter, error) {
	f := fields{
		Title:   raw[models.FieldTitle],
		Type:    raw[models.FieldType],
		Project: raw[models.FieldProject],
		Status:  raw[models.FieldStatus],
		Tags:    raw[models.FieldTags],
		Created: preprocessDate(raw[models.FieldCreated]),
		Updated: preprocessDate(raw[models.FieldUpdated]),
	}
	if err := f.Validate(); err != nil {
		return models.Frontmatter{}, err
	}
	return Coerce(raw), nil
}

// Coerce converts every recognized field independently to its declared type
// without validating it, and keeps unknown keys untouched. It is the fallback
// for frontmatter that failed Validate.
func Coerce(raw map[string]any) models.Frontmatter {
	fm := models.Frontmatter{
		Title:   coerceString(raw[models.FieldTitle]),
		Type:    coerceString(raw[models.FieldType]),
		Project: coerceString(raw[models.FieldProject]),
		Status:  coerceString(raw[models.FieldStatus]),
		Tags:    coerceTags(raw[models.FieldTags]),
		Created: coerceDate(raw[models.FieldCreated]),
		Updated: coerceDate(raw[models.FieldUpdated]),
	}
	for k, v := range raw {
		if isRecognized(k) {
			continue
		}
		if fm.Extra == nil {
			fm.Extra = make(map[string]any)
		}
		fm.Extra[k] = v
	}
	return fm
}

func isRecognized(key string) bool {
	switch key {
	case models.FieldTitle, models.FieldType, models.FieldProject, models.FieldStatus,
		models.FieldTags, models.FieldCreated, models.FieldUpdated:
		return true
	}
	return false
}

func preprocessDate(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(dateLayout)
	}
	return v
}

func isString(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return errors.New("must be a string")
	}
	return nil
}

func isScalar(v any) error {
	switch v.(type) {
	case map[string]any, []any:
		return errors.New("must be a string")
	}
	return nil
}

func isList(v any) error {
	if v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return errors.New("must be a list of strings")
	}
	for _, item := range items {
		if isScalar(item) != nil {
			return errors.New("must be a list of strings")
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case time.Time:
		return t.UTC().Format(dateLayout)
	default:
		return fmt.Sprint(t)
	}
}

func coerceString(v any) *string {
	if v == nil {
		return nil
	}
	s := stringify(v)
	return &s
}

func coerceDate(v any) *string {
	if v == nil {
		return nil
	}
	s := stringify(v)
	if timestampRe.MatchString(s) {
		s = s[:len(dateLayout)]
	}
	return &s
}

func coerceTags(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, stringify(item))
		}
		return out
	case []string:
		return t
	default:
		return []string{stringify(t)}
	}
}
