package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/ctxutil"
	"github.com/Spok95/telegram-challenge-bot/internal/metrics"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

const defaultBaseURL = "https://www.strava.com/api/v3"

const (
	perPage = 200
	// жёсткий потолок страниц — защита от бесконечной пагинации
	maxPages = 20
)

// Client — клубная лента Strava. Страницы выбираются последовательно и
// склеиваются целиком до обработки: на частичной выборке ничего не считаем.
type Client struct {
	baseURL string
	clubID  string
	tokens  *TokenProvider
	httpc   *http.Client
}

func NewClient(clubID string, tokens *TokenProvider) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		clubID:  clubID,
		tokens:  tokens,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchClubActivities — все активности клубной ленты, не больше maxPages страниц.
func (c *Client) FetchClubActivities(ctx context.Context) ([]models.RawActivity, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var all []models.RawActivity
	for page := 1; page <= maxPages; page++ {
		batch, err := c.fetchPage(ctx, token, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, token string, page int) ([]models.RawActivity, error) {
	ctx, cancel := ctxutil.WithHTTPTimeout(ctx)
	defer cancel()

	path := fmt.Sprintf("%s/clubs/%s/activities?page=%d&per_page=%d", c.baseURL, c.clubID, page, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	t0 := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveStravaRequest(time.Since(t0))
	if err != nil {
		return nil, fmt.Errorf("clubs/%s/activities: %w", c.clubID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("clubs/%s/activities: http %d: %s",
			c.clubID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var batch []models.RawActivity
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("clubs/%s/activities: разбор ответа: %w", c.clubID, err)
	}
	return batch, nil
}
