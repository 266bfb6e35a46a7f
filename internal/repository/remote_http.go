// internal/repository/remote_http.go
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
)

// httpRemoteStore talks to a PostgREST-style backend: row-level filtered
// tables `daily_logs`, `groups` and `adhkar` under /rest/v1, with
// merge-duplicates upserts keyed (user_id, dhikr_id, log_date).
type httpRemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPRemoteStore(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) RemoteStore {
	return &httpRemoteStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type logRow struct {
	UserID    uuid.UUID `json:"user_id,omitempty"`
	DhikrID   uuid.UUID `json:"dhikr_id"`
	LogDate   string    `json:"log_date"`
	Count     int       `json:"count"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

type groupRow struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type dhikrRow struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	Text        string    `json:"text"`
	TargetCount int       `json:"target_count"`
	Virtue      string    `json:"virtue"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *httpRemoteStore) UpsertLog(ctx context.Context, userID, dhikrID uuid.UUID, logDate string, count int) error {
	if s.baseURL == "" {
		return fmt.Errorf("%w: remote base URL not configured", model.ErrRemoteUnavailable)
	}
	if s.apiKey == "" {
		return fmt.Errorf("%w: missing api key", model.ErrNoSession)
	}

	payload := []logRow{{
		UserID:    userID,
		DhikrID:   dhikrID,
		LogDate:   logDate,
		Count:     count,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteRejected, err)
	}

	endpoint := s.baseURL + "/rest/v1/daily_logs?on_conflict=user_id,dhikr_id,log_date"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteRejected, err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return classifyStatus(resp.StatusCode)
}

func (s *httpRemoteStore) ReadLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]model.DailyLogEntry, error) {
	query := url.Values{}
	query.Set("select", "dhikr_id,log_date,count")
	query.Set("user_id", "eq."+userID.String())
	if from != "" {
		query.Add("log_date", "gte."+from)
	}
	if to != "" {
		query.Add("log_date", "lte."+to)
	}

	var rows []logRow
	if err := s.get(ctx, "/rest/v1/daily_logs", query, &rows); err != nil {
		return nil, err
	}

	entries := make([]model.DailyLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.DailyLogEntry{
			DhikrID: row.DhikrID,
			LogDate: row.LogDate,
			Count:   row.Count,
		})
	}
	return entries, nil
}

func (s *httpRemoteStore) ReadDefinitions(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+userID.String())
	query.Set("order", "sort_order.asc,created_at.asc,id.asc")

	var groupRows []groupRow
	if err := s.get(ctx, "/rest/v1/groups", query, &groupRows); err != nil {
		return nil, err
	}
	var dhikrRows []dhikrRow
	if err := s.get(ctx, "/rest/v1/adhkar", query, &dhikrRows); err != nil {
		return nil, err
	}

	groups := make([]model.DhikrGroup, 0, len(groupRows))
	for _, g := range groupRows {
		group := model.DhikrGroup{
			GroupID:   g.ID,
			Name:      g.Name,
			Icon:      g.Icon,
			IsActive:  g.IsActive,
			SortOrder: g.SortOrder,
			CreatedAt: g.CreatedAt,
			Adhkar:    []model.Dhikr{},
		}
		for _, d := range dhikrRows {
			if d.GroupID != g.ID {
				continue
			}
			icon := d.Icon
			if icon == "" {
				icon = g.Icon
			}
			group.Adhkar = append(group.Adhkar, model.Dhikr{
				DhikrID:     d.ID,
				GroupID:     d.GroupID,
				Text:        d.Text,
				TargetCount: d.TargetCount,
				Virtue:      d.Virtue,
				Icon:        icon,
				IsActive:    d.IsActive,
				SortOrder:   d.SortOrder,
				CreatedAt:   d.CreatedAt,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *httpRemoteStore) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	if s.baseURL == "" {
		return fmt.Errorf("%w: remote base URL not configured", model.ErrRemoteUnavailable)
	}
	if s.apiKey == "" {
		return fmt.Errorf("%w: missing api key", model.ErrNoSession)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteRejected, err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decoding response: %v", model.ErrRemoteRejected, err)
	}
	return nil
}

func (s *httpRemoteStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
}

// classifyStatus sorts HTTP failures into the retry buckets the sync layer
// depends on. Auth failures count as a missing session and therefore queue.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: remote returned %d", model.ErrNoSession, status)
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: remote returned %d", model.ErrRemoteUnavailable, status)
	default:
		return fmt.Errorf("%w: remote returned %d", model.ErrRemoteRejected, status)
	}
}
