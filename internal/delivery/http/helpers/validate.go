package helpers

import (
	"net/http"
	"net/url"
	"strings"
)

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// QueryBinder is implemented by request DTOs read from the query string.
// BindQuery returns a slice of parse error messages; nil or empty means bound.
type QueryBinder interface {
	BindQuery(q url.Values) []string
}

// BindAndValidate binds the query string into dest and, if dest implements Validator,
// runs Validate(). On failure it writes a 400 JSON error and returns false.
// Callers should return immediately when BindAndValidate returns false.
func BindAndValidate(w http.ResponseWriter, r *http.Request, dest QueryBinder) bool {
	if errs := dest.BindQuery(r.URL.Query()); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
