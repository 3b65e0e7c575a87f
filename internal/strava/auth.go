package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const tokenURL = "https://www.strava.com/oauth/token"

// запас до истечения, после которого токен считаем протухшим
const tokenExpiryMargin = 60 * time.Second

// TokenProvider — обмен refresh-токена на свежий bearer с кэшем до истечения.
// Явный компонент со своим состоянием вместо модульного кэша: передаётся
// в клиента по ссылке, в тестах подменяется целиком.
type TokenProvider struct {
	clientID     string
	clientSecret string
	httpc        *http.Client
	tokenURL     string

	mu           sync.Mutex
	refreshToken string
	accessToken  string
	expiresAt    time.Time
}

func NewTokenProvider(clientID, clientSecret, refreshToken string) *TokenProvider {
	return &TokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		httpc:        &http.Client{Timeout: 15 * time.Second},
		tokenURL:     tokenURL,
	}
}

// Token — действующий access-токен: из кэша, пока не подошёл к истечению,
// иначе обновление. Неудачное обновление не трогает закэшированное состояние —
// следующая попытка стартует с тех же позиций.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.expiresAt.Add(-tokenExpiryMargin)) {
		return p.accessToken, nil
	}

	form := url.Values{
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {p.refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("обновление токена: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("обновление токена: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresAt    int64  `json:"expires_at"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("ответ токен-эндпоинта: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("токен-эндпоинт вернул пустой access_token")
	}

	p.accessToken = tok.AccessToken
	p.expiresAt = time.Unix(tok.ExpiresAt, 0)
	if tok.RefreshToken != "" {
		// Strava может ротировать refresh-токен
		p.refreshToken = tok.RefreshToken
	}
	return p.accessToken, nil
}
