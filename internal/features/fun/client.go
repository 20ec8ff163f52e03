package fun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Joke — шутка из двух частей.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Meme — картинка с подписью.
type Meme struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Client ходит во внешние API контента. Одна попытка, без повторов:
// при ошибке вызывающий код подставляет встроенный контент.
type Client struct {
	http    *http.Client
	jokeURL string
	memeURL string
}

func NewClient(jokeURL, memeURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		jokeURL: jokeURL,
		memeURL: memeURL,
	}
}

// FetchJoke запрашивает случайную шутку.
func (c *Client) FetchJoke(ctx context.Context) (*Joke, error) {
	var joke Joke
	if err := c.getJSON(ctx, c.jokeURL, &joke); err != nil {
		return nil, err
	}
	if joke.Setup == "" || joke.Punchline == "" {
		return nil, fmt.Errorf("API вернул пустую шутку")
	}
	return &joke, nil
}

// FetchMeme запрашивает случайный мем.
func (c *Client) FetchMeme(ctx context.Context) (*Meme, error) {
	var meme Meme
	if err := c.getJSON(ctx, c.memeURL, &meme); err != nil {
		return nil, err
	}
	if meme.URL == "" {
		return nil, fmt.Errorf("API вернул мем без ссылки")
	}
	return &meme, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("не удалось собрать запрос: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос к %s не удался: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API %s вернул статус %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("не удалось разобрать ответ %s: %w", url, err)
	}
	return nil
}
