package allsports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"BestXI/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Livescore", r.URL.Query().Get("met"))
		assert.Equal(t, "k", r.URL.Query().Get("APIkey"))
		_, _ = w.Write([]byte(`{"success":1,"result":[
			{"event_key":1,"event_home_team":"A","event_away_team":"B"},
			{"event_key":2,"event_home_team":"C","event_away_team":"D"}
		]}`))
	}))
	defer srv.Close()

	a := NewAllSportsAdapter(&config.FeedConfig{BaseURL: srv.URL, APIKey: "k"}, logrus.New())
	assert.Equal(t, FeedName, a.GetName())

	matches, err := a.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, FeedName, matches[0].Feed)
	assert.JSONEq(t, `{"event_key":2,"event_home_team":"C","event_away_team":"D"}`, string(matches[1].Payload))
}

func TestFetchMatchesNoLiveMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":1}`))
	}))
	defer srv.Close()

	a := NewAllSportsAdapter(&config.FeedConfig{BaseURL: srv.URL}, logrus.New())
	matches, err := a.FetchMatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFetchMatchesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, ``},
		{"bad json", http.StatusOK, `{"result":`},
		{"unsuccessful", http.StatusOK, `{"success":0,"error":"1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := NewAllSportsAdapter(&config.FeedConfig{BaseURL: srv.URL}, logrus.New())
			_, err := a.FetchMatches(context.Background())
			assert.Error(t, err)
		})
	}
}
