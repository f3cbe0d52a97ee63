package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"roomsearch/internal/domain"
)

// The booking service renders its result map with the platform's default map
// formatting rather than a data-interchange format:
//
//	response = "{availableRooms=[" [ id { ", " id } ] "]}"
//	id       = positive decimal integer
//
// Surrounding whitespace is ignored. Anything else is ErrMalformedResponse.
const (
	legacyPrefix = "{availableRooms=["
	legacySuffix = "]}"
	legacySep    = ", "
)

// availableRoomsJSON is the structured rendering of the same result.
type availableRoomsJSON struct {
	AvailableRooms *[]int64 `json:"availableRooms"`
}

// ParseAvailableRooms decodes a booking service availability body. The legacy textual
// framing is tried first; a JSON object with an availableRooms array is accepted too.
func ParseAvailableRooms(body []byte) ([]int64, error) {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, legacyPrefix) {
		return parseLegacy(text)
	}
	if strings.HasPrefix(text, "{") {
		return parseJSON([]byte(text))
	}
	return nil, fmt.Errorf("%w: unexpected body %q", domain.ErrMalformedResponse, abbreviate(text))
}

func parseLegacy(text string) ([]int64, error) {
	if !strings.HasSuffix(text, legacySuffix) || len(text) < len(legacyPrefix)+len(legacySuffix) {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedResponse, legacySuffix)
	}
	list := text[len(legacyPrefix) : len(text)-len(legacySuffix)]
	ids := make([]int64, 0)
	if list == "" {
		return ids, nil
	}
	for _, item := range strings.Split(list, legacySep) {
		id, err := parseID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseJSON(body []byte) ([]int64, error) {
	var payload availableRoomsJSON
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if payload.AvailableRooms == nil {
		return nil, fmt.Errorf("%w: missing availableRooms", domain.ErrMalformedResponse)
	}
	ids := make([]int64, 0, len(*payload.AvailableRooms))
	for _, id := range *payload.AvailableRooms {
		if id <= 0 {
			return nil, fmt.Errorf("%w: invalid room id %d", domain.ErrMalformedResponse, id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid room id %q", domain.ErrMalformedResponse, s)
	}
	return id, nil
}

func abbreviate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
