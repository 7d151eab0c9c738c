package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrSourceStatus indicates the record source answered with a non-200 status.
var ErrSourceStatus = errors.New("media: unexpected source status")

// Source is anything that can produce the current record list.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// HTTPSource polls a record server for `{"items": [...]}`, optionally scoped
// to a single event.
type HTTPSource struct {
	baseURL string
	event   string
	client  *http.Client
}

func NewHTTPSource(baseURL, event string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		event:   event,
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

type listResponse struct {
	Items []Record `json:"items"`
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Record, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("media: bad source url: %w", err)
	}
	u.Path = "/api/records"
	if s.event != "" {
		q := u.Query()
		q.Set("event", s.event)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrSourceStatus, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("media: decode records: %w", err)
	}
	return list.Items, nil
}
