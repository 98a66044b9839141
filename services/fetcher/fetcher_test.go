package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpl_Fetch(t *testing.T) {
	var mu sync.Mutex
	var gotUserAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUserAgent = r.Header.Get("User-Agent")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss><channel></channel></rss>"))
	})
	mux.HandleFunc("/missing.xml", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusNotFound)
	})
	mux.HandleFunc("/redirect.xml", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/rss.xml", http.StatusFound)
	})
	mux.HandleFunc("/empty.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/no-content.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tests := []struct {
		name       string
		url        string
		want       string
		wantErr    error
		wantStatus int
	}{
		{
			name: "200 returns the whole body",
			url:  server.URL + "/rss.xml",
			want: "<rss><channel></channel></rss>",
		},
		{
			name: "redirect is followed to a 200",
			url:  server.URL + "/redirect.xml",
			want: "<rss><channel></channel></rss>",
		},
		{
			name: "200 with empty body is not an error here",
			url:  server.URL + "/empty.xml",
			want: "",
		},
		{
			name:       "404 is a status error",
			url:        server.URL + "/missing.xml",
			wantErr:    ErrUnexpectedStatus,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "204 is not a success",
			url:        server.URL + "/no-content.xml",
			wantErr:    ErrUnexpectedStatus,
			wantStatus: http.StatusNoContent,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://example.com/rss.xml",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "no host",
			url:     "http:///rss.xml",
			wantErr: ErrInvalidURL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := New("FXMate/1.0", 2*time.Second)
			got, err := service.Fetch(context.Background(), tt.url)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantStatus != 0 {
					var httpErr gofeed.HTTPError
					require.True(t, errors.As(err, &httpErr))
					assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, "FXMate/1.0", gotUserAgent)
		})
	}
}

func TestImpl_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	service := New("FXMate/1.0", 50*time.Millisecond)
	start := time.Now()
	_, err := service.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestImpl_FetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	service := New("FXMate/1.0", time.Second)
	_, err := service.Fetch(context.Background(), url)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestImpl_FetchBodyTooLarge(t *testing.T) {
	limit := maxBodySize
	maxBodySize = 16
	defer func() { maxBodySize = limit }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Query().Get("body")))
	}))
	defer server.Close()

	service := New("FXMate/1.0", time.Second)

	got, err := service.Fetch(context.Background(), server.URL+"?body=0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", got)

	_, err = service.Fetch(context.Background(), server.URL+"?body=0123456789abcdefg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadBody)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}
