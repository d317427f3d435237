// Package epg is the client for the guide backend. It fetches channels with
// their programs for a time window, runs program search, and resolves single
// programs by ID. Timestamps cross the wire as ISO-8601 strings and are
// converted to time.Time here, at the boundary; everything above this package
// works in instants.
package epg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/javipelopi/gridcast/pkg/model"
	"github.com/javipelopi/gridcast/pkg/timewin"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxBodySize        = 32 * 1024 * 1024 // 32 MB guide payload cap
)

// ErrFetchFailed wraps network and backend errors. It is surfaced as an
// inline panel message and retried only on explicit user refresh.
var ErrFetchFailed = errors.New("epg: fetch failed")

// IsCancelled reports whether err is a superseded fetch. Cancelled fetches
// are discarded silently, never surfaced as errors.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Guide is one window's worth of data: ordered channels and their programs,
// sorted by start time per channel. It is replaced wholesale on re-fetch.
type Guide struct {
	Channels []model.Channel
	Programs map[string][]model.Program
}

// ProgramCount returns the total number of programs across all channels.
func (g *Guide) ProgramCount() int {
	n := 0
	for _, ps := range g.Programs {
		n += len(ps)
	}
	return n
}

// ChannelPrograms returns the sorted program list for a channel.
func (g *Guide) ChannelPrograms(channelID string) []model.Program {
	return g.Programs[channelID]
}

// NowPlaying returns the currently airing program on a channel, if any.
func (g *Guide) NowPlaying(channelID string, now time.Time) (model.Program, bool) {
	for _, p := range g.Programs[channelID] {
		if model.Classify(p, now) == model.StatusNow {
			return p, true
		}
	}
	return model.Program{}, false
}

// Client talks to the guide backend. Concurrent calls for the same logical
// resource are deduplicated through a singleflight group so two fetches for
// one window never race each other's state.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
	group   singleflight.Group
}

// NewClient creates a client for the backend at baseURL. A nil logger
// discards logs.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultHTTPTimeout},
		log:     logger,
	}
}

// Wire DTOs. Start/Stop are ISO-8601 strings; records that fail to parse as
// a valid interval are dropped rather than crashing the viewport.
type channelDTO struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Icon         string       `json:"icon,omitempty"`
	DisplayOrder int          `json:"displayOrder"`
	Programs     []programDTO `json:"programs"`
}

type programDTO struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Episode     string `json:"episode,omitempty"`
	Start       string `json:"start"`
	Stop        string `json:"stop"`
}

type searchResultDTO struct {
	ProgramID   string `json:"programId"`
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	ChannelName string `json:"channelName"`
	Category    string `json:"category,omitempty"`
	MatchType   string `json:"matchType"`
	Start       string `json:"start"`
	Stop        string `json:"stop"`
}

type programDetailDTO struct {
	Program programDTO `json:"program"`
	Channel channelDTO `json:"channel"`
}

// FetchGuide retrieves channels with nested programs for the window.
// Concurrent calls for the same window share one request.
func (c *Client) FetchGuide(ctx context.Context, w timewin.Window) (*Guide, error) {
	key := "guide:" + w.Start.UTC().Format(time.RFC3339) + "/" + w.End.UTC().Format(time.RFC3339)

	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetchGuide(ctx, w)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Guide), nil
	}
}

func (c *Client) fetchGuide(ctx context.Context, w timewin.Window) (*Guide, error) {
	q := url.Values{}
	q.Set("start", w.Start.UTC().Format(time.RFC3339))
	q.Set("end", w.End.UTC().Format(time.RFC3339))

	var dtos []channelDTO
	if err := c.getJSON(ctx, "/api/guide", q, &dtos); err != nil {
		return nil, err
	}

	guide := &Guide{Programs: make(map[string][]model.Program, len(dtos))}
	dropped := 0
	for _, cd := range dtos {
		guide.Channels = append(guide.Channels, model.Channel{
			ID:           cd.ID,
			Name:         cd.Name,
			Icon:         cd.Icon,
			DisplayOrder: cd.DisplayOrder,
		})
		for _, pd := range cd.Programs {
			p, err := pd.toProgram(cd.ID)
			if err != nil {
				dropped++
				continue
			}
			guide.Programs[cd.ID] = append(guide.Programs[cd.ID], p)
		}
		model.SortPrograms(guide.Programs[cd.ID])
	}
	model.SortChannels(guide.Channels)
	if dropped > 0 {
		c.log.Warn("dropped programs with invalid intervals",
			"count", dropped, "window", w.Start.Format(time.RFC3339))
	}
	return guide, nil
}

// Search runs a program search on the backend. An empty result list is not
// an error; the caller renders an explicit empty state.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)

	var dtos []searchResultDTO
	if err := c.getJSON(ctx, "/api/programs/search", q, &dtos); err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(dtos))
	for _, d := range dtos {
		start, err1 := parseISO(d.Start)
		end, err2 := parseISO(d.Stop)
		if err1 != nil || err2 != nil || !start.Before(end) {
			continue
		}
		results = append(results, model.SearchResult{
			ProgramID:   d.ProgramID,
			ChannelID:   d.ChannelID,
			Title:       d.Title,
			ChannelName: d.ChannelName,
			Category:    d.Category,
			MatchType:   d.MatchType,
			Start:       start,
			End:         end,
		})
	}
	return results, nil
}

// ProgramByID resolves a single program with its channel context.
func (c *Client) ProgramByID(ctx context.Context, id string) (model.Program, model.Channel, error) {
	var dto programDetailDTO
	if err := c.getJSON(ctx, "/api/programs/"+url.PathEscape(id), nil, &dto); err != nil {
		return model.Program{}, model.Channel{}, err
	}

	p, err := dto.Program.toProgram(dto.Channel.ID)
	if err != nil {
		return model.Program{}, model.Channel{}, fmt.Errorf("%w: program %s: %v", ErrFetchFailed, id, err)
	}
	ch := model.Channel{
		ID:           dto.Channel.ID,
		Name:         dto.Channel.Name,
		Icon:         dto.Channel.Icon,
		DisplayOrder: dto.Channel.DisplayOrder,
	}
	return p, ch, nil
}

// getJSON performs a GET and decodes the response body into out. Every
// request carries a correlation ID that also tags the client log lines.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	started := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		if IsCancelled(err) || ctx.Err() != nil {
			return context.Canceled
		}
		c.log.Error("request failed", "path", path, "request_id", reqID, "err", err)
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("backend returned error status",
			"path", path, "request_id", reqID, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrFetchFailed, err)
	}
	c.log.Debug("request completed",
		"path", path, "request_id", reqID, "elapsed", time.Since(started))
	return nil
}

func (d programDTO) toProgram(channelID string) (model.Program, error) {
	start, err := parseISO(d.Start)
	if err != nil {
		return model.Program{}, fmt.Errorf("start: %v", err)
	}
	end, err := parseISO(d.Stop)
	if err != nil {
		return model.Program{}, fmt.Errorf("stop: %v", err)
	}
	if d.ChannelID != "" {
		channelID = d.ChannelID
	}
	p := model.Program{
		ID:          d.ID,
		ChannelID:   channelID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Episode:     d.Episode,
		Start:       start,
		End:         end,
	}
	if !p.ValidInterval() {
		return model.Program{}, fmt.Errorf("invalid interval %s–%s", d.Start, d.Stop)
	}
	return p, nil
}

func parseISO(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	return time.Parse(time.RFC3339, s)
}
