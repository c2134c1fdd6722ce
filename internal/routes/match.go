package routes

import "strings"

// Match is the result of resolving a location against the table.
type Match struct {
	Route  Route
	Params map[string]string
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

func paramName(segment string) (string, bool) {
	if len(segment) >= 2 && segment[0] == '{' && segment[len(segment)-1] == '}' {
		return segment[1 : len(segment)-1], true
	}

	return "", false
}

// shape reduces a pattern to a key under which two patterns matching the
// same locations collide, e.g. /pods/{id} and /pods/{name}.
func shape(path string) string {
	segments := splitPath(path)
	for i, segment := range segments {
		if _, ok := paramName(segment); ok {
			segments[i] = "{}"
		}
	}

	return "/" + strings.Join(segments, "/")
}

func matchSegments(pattern []string, location []string) (map[string]string, bool) {
	if len(pattern) != len(location) {
		return nil, false
	}

	var params map[string]string
	for i, segment := range pattern {
		if name, ok := paramName(segment); ok {
			if location[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = location[i]
			continue
		}

		if segment != location[i] {
			return nil, false
		}
	}

	return params, true
}
