package fun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"setup":"Why?","punchline":"Because."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	joke, err := c.FetchJoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Why?", joke.Setup)
	assert.Equal(t, "Because.", joke.Punchline)
}

func TestFetchJokeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.FetchJoke(context.Background())
	assert.Error(t, err)
}

func TestFetchJokeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.FetchJoke(context.Background())
	assert.Error(t, err, "шутка без текста должна считаться ошибкой")
}

func TestFetchMeme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"title":"cat","url":"https://example.com/cat.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, time.Second)
	meme, err := c.FetchMeme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cat", meme.Title)
	assert.Equal(t, "https://example.com/cat.jpg", meme.URL)
}

func TestFetchMemeUnreachable(t *testing.T) {
	// Сервер сразу закрыт — одна попытка, ошибка наружу
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := NewClient("", srv.URL, time.Second)
	_, err := c.FetchMeme(context.Background())
	assert.Error(t, err)
}
