package booking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roomsearch/internal/domain"
)

// maxResponseBytes caps how much of the booking service body is read.
const maxResponseBytes = 1 << 20

type httpAvailabilityChecker struct {
	client  *http.Client
	baseURL string
}

// NewHTTPAvailabilityChecker returns a checker that calls the booking service at baseURL,
// e.g. "http://localhost:8082".
func NewHTTPAvailabilityChecker(client *http.Client, baseURL string) domain.AvailabilityChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpAvailabilityChecker{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *httpAvailabilityChecker) CheckAvailability(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error) {
	if len(roomIDs) == 0 {
		return []int64{}, nil
	}
	endpoint := c.availabilityURL(roomIDs, start, end)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: booking service returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return ParseAvailableRooms(body)
}

// availabilityURL builds /available/multiple/{id1,id2,...}?startsAt=HH:MM:SS&endsAt=HH:MM:SS.
func (c *httpAvailabilityChecker) availabilityURL(roomIDs []int64, start, end time.Time) string {
	ids := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	q := url.Values{}
	q.Set("startsAt", domain.TimeOfDayOf(start).String())
	q.Set("endsAt", domain.TimeOfDayOf(end).String())
	return c.baseURL + "/available/multiple/" + strings.Join(ids, ",") + "?" + q.Encode()
}
