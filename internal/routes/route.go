package routes

import (
	"maps"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ComponentRef identifies the renderable unit for a route. The table never
// interprets it.
type ComponentRef string

// MetaTitle is the metadata key for a page's display title.
const MetaTitle = "title"

type Route struct {
	Path      string
	Name      string
	Component ComponentRef
	Meta      map[string]string
}

// Title returns the display title, if the route declares one.
func (r Route) Title() (string, bool) {
	title, ok := r.Meta[MetaTitle]
	return title, ok
}

func (r Route) clone() Route {
	r.Meta = maps.Clone(r.Meta)
	return r
}

func (r Route) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path,
			validation.Required,
			validation.By(validatePath),
		),
		validation.Field(&r.Name,
			validation.Required,
			validation.By(validateNoSpace),
		),
		validation.Field(&r.Component,
			validation.Required,
		),
	)
}

func validatePath(value interface{}) error {
	path, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if !strings.HasPrefix(path, "/") {
		return validation.NewError("validation_path_not_absolute", "must start with /")
	}

	seen := make(map[string]bool)
	for _, segment := range splitPath(path) {
		if segment == "" {
			return validation.NewError("validation_path_empty_segment", "must not contain empty segments")
		}

		param, isParam := paramName(segment)
		if !isParam {
			if strings.ContainsAny(segment, "{}") {
				return validation.NewError("validation_path_bad_param", "parameters must span a whole segment")
			}
			continue
		}

		if param == "" {
			return validation.NewError("validation_path_bad_param", "parameter name cannot be empty")
		}
		if seen[param] {
			return validation.NewError("validation_path_duplicate_param", "parameter names must be unique")
		}
		seen[param] = true
	}

	return nil
}

func validateNoSpace(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if strings.TrimSpace(name) != name || strings.ContainsAny(name, " \t\n") {
		return validation.NewError("validation_name_whitespace", "must not contain whitespace")
	}

	return nil
}
