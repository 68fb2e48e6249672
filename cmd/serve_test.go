package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/danseband/catalog"
	"github.com/jsphweid/danseband/midi"
	"github.com/jsphweid/danseband/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, target string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestHandleSongs(t *testing.T) {
	resp := get(t, "/songs")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var songs []model.SongSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&songs))

	assert := assert.New(t)
	assert.Len(songs, len(catalog.IDs()))
	assert.Equal("angels-12-8", songs[0].ID)
}

func TestHandleSong(t *testing.T) {
	resp := get(t, "/songs/db-major")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail model.SongDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))

	assert := assert.New(t)
	assert.Equal("db-major", detail.ID)
	assert.Equal(116.0, detail.Tempo)
	assert.Equal(52, detail.Bars)
	assert.Len(detail.TrackStats, detail.Tracks)
	for _, st := range detail.TrackStats {
		assert.NotEmpty(st.Name)
	}
}

func TestHandleMidi(t *testing.T) {
	resp := get(t, "/songs/himmelen/midi")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.Contains(resp.Header.Get("Content-Disposition"), "himmelen.mid")

	s, err := midi.Read(bytes.NewReader(body))
	require.NoError(t, err)
	summary := midi.Summarize(s)
	assert.Positive(summary.Notes())

	var lyrics int
	for _, track := range summary.Tracks {
		lyrics += track.Lyrics
	}
	assert.Positive(lyrics)
}

func TestHandlePreview(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		bars   int
	}{
		{name: "default length", target: "/songs/danseband-template/preview", status: http.StatusOK, bars: defaultPreviewBars},
		{name: "two bars", target: "/songs/danseband-template/preview?bars=2", status: http.StatusOK, bars: 2},
		{name: "bad bars", target: "/songs/danseband-template/preview?bars=x", status: http.StatusBadRequest},
		{name: "zero bars", target: "/songs/danseband-template/preview?bars=0", status: http.StatusBadRequest},
		{name: "unknown song", target: "/songs/polka/preview", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, tt.target)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				var e model.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
				assert.NotEmpty(t, e.Error)
				return
			}
			s, err := midi.Read(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.bars, midi.Summarize(s).Bars)
		})
	}
}

func TestUnknownSong(t *testing.T) {
	for _, target := range []string{"/songs/polka", "/songs/polka/midi"} {
		resp := get(t, target)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
	}
}
