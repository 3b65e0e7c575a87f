package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

func testTokenServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.Method != http.MethodPost {
			t.Errorf("токен-эндпоинт: метод %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if r.Form.Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fresh-token",
			"refresh_token": "rotated-refresh",
			"expires_at":    time.Now().Add(6 * time.Hour).Unix(),
		})
	}))
}

func TestTokenProvider_CachesUntilExpiry(t *testing.T) {
	calls := 0
	srv := testTokenServer(t, &calls)
	defer srv.Close()

	p := NewTokenProvider("id", "secret", "refresh")
	p.tokenURL = srv.URL

	for i := 0; i < 3; i++ {
		tok, err := p.Token(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if tok != "fresh-token" {
			t.Fatalf("токен: %q", tok)
		}
	}
	if calls != 1 {
		t.Fatalf("кэш не сработал: %d обращений к токен-эндпоинту", calls)
	}
	if p.refreshToken != "rotated-refresh" {
		t.Fatalf("ротация refresh-токена: %q", p.refreshToken)
	}
}

func TestTokenProvider_FailureKeepsCachedState(t *testing.T) {
	p := NewTokenProvider("id", "secret", "refresh")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	p.tokenURL = srv.URL

	if _, err := p.Token(context.Background()); err == nil {
		t.Fatal("ожидали ошибку обновления")
	}
	if p.refreshToken != "refresh" {
		t.Fatalf("неудача не должна трогать refresh-токен: %q", p.refreshToken)
	}
}

func TestClient_FetchClubActivities_Paged(t *testing.T) {
	// первая страница полная (perPage), вторая короткая — на ней остановка
	var pages []string
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer fresh-token" {
			t.Errorf("Authorization = %q", got)
		}
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		n := perPage
		if page == "2" {
			n = 3
		}
		batch := make([]models.RawActivity, n)
		for i := range batch {
			batch[i].Name = fmt.Sprintf("p%s-%d", page, i)
			batch[i].Type = "Run"
			batch[i].Distance = 1000
		}
		_ = json.NewEncoder(w).Encode(batch)
	}))
	defer feed.Close()

	calls := 0
	tokenSrv := testTokenServer(t, &calls)
	defer tokenSrv.Close()

	p := NewTokenProvider("id", "secret", "refresh")
	p.tokenURL = tokenSrv.URL
	c := NewClient("98765", p)
	c.baseURL = feed.URL

	acts, err := c.FetchClubActivities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(acts) != perPage+3 {
		t.Fatalf("ожидали %d активностей, получили %d", perPage+3, len(acts))
	}
	if len(pages) != 2 || pages[0] != "1" || pages[1] != "2" {
		t.Fatalf("страницы выбирались в порядке %v", pages)
	}
}

func TestClient_FetchClubActivities_HTTPError(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "server blew up", http.StatusBadGateway)
	}))
	defer feed.Close()

	calls := 0
	tokenSrv := testTokenServer(t, &calls)
	defer tokenSrv.Close()

	p := NewTokenProvider("id", "secret", "refresh")
	p.tokenURL = tokenSrv.URL
	c := NewClient("98765", p)
	c.baseURL = feed.URL

	if _, err := c.FetchClubActivities(context.Background()); err == nil {
		t.Fatal("ожидали ошибку http")
	}
}
