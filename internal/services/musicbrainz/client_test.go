package musicbrainz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"undisorder/internal/services"
	"undisorder/internal/services/musicbrainz"
)

const recordingJSON = `{
  "id": "rec-42",
  "title": "Song Title",
  "artist-credit": [{"name": "Credit Name", "artist": {"name": "The Artist"}}],
  "releases": [
    {"title": "The Album", "date": "1997-05-21",
     "media": [{"position": 2, "tracks": [{"position": 7, "number": "7"}]}]},
    {"title": "Compilation", "date": "2005"}
  ]
}`

func TestRecordingParsesFirstRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recording/rec-42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("fmt") != "json" {
			t.Fatalf("expected json format, got %q", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Fatal("expected user agent header")
		}
		_, _ = w.Write([]byte(recordingJSON))
	}))
	defer server.Close()

	client := musicbrainz.NewClient(musicbrainz.Config{BaseURL: server.URL})
	rec, err := client.Recording(context.Background(), "rec-42")
	if err != nil {
		t.Fatalf("Recording returned error: %v", err)
	}
	want := musicbrainz.Recording{
		ID:          "rec-42",
		Title:       "Song Title",
		Artist:      "The Artist",
		Album:       "The Album",
		Year:        1997,
		TrackNumber: 7,
		DiscNumber:  2,
	}
	if *rec != want {
		t.Fatalf("unexpected recording:\n got %+v\nwant %+v", *rec, want)
	}
}

func TestRecordingNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := musicbrainz.NewClient(musicbrainz.Config{BaseURL: server.URL})
	_, err := client.Recording(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordingRejectsEmptyID(t *testing.T) {
	client := musicbrainz.NewClient(musicbrainz.Config{})
	if _, err := client.Recording(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
