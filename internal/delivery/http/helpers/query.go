package helpers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// localDateTimeLayouts are the ISO-8601 local date-time forms accepted for startsAt/endsAt.
// Seconds are optional and fractional seconds are allowed.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// QueryInt reads an optional integer parameter. A missing or blank value yields nil.
func QueryInt(q url.Values, key string) (*int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// QueryString reads an optional string parameter. A missing or blank value yields nil.
func QueryString(q url.Values, key string) *string {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	return &s
}

// QueryLocalDateTime reads an optional ISO-8601 local date-time, interpreted in loc.
func QueryLocalDateTime(q url.Values, key string, loc *time.Location) (*time.Time, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be an ISO-8601 local date-time such as 2021-12-01T09:20:00", key)
}

// QueryList reads a repeatable parameter. Each occurrence may also hold a comma-separated
// list; blank items are dropped.
func QueryList(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
