package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/students-rooms-api/internal/apperror"
)

// parseIntList reads a `field__in`-style query parameter: a comma-
// separated list of integers, e.g. ?room__in=1,2,3.
//
// Returns nil (meaning "no filter") when the parameter is absent or
// empty. Blank entries between commas are skipped, so "1,,2" and
// "1, 2" both parse. Any non-integer entry fails the whole parameter
// with a validation error naming it — filters are never partially
// applied.
func parseIntList(r *http.Request, param string) ([]int, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, apperror.ValidationFailed(
				fmt.Sprintf("invalid query parameter %s", param),
				map[string]any{param: "expected comma-separated integers"})
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// parseIDParam reads the {id} path parameter as an integer.
func parseIDParam(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(
			fmt.Sprintf("invalid id %q, expected an integer", raw),
			map[string]any{"id": "expected an integer"})
	}
	return id, nil
}
