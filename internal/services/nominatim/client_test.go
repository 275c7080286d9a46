package nominatim_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"undisorder/internal/services"
	"undisorder/internal/services/nominatim"
)

func TestReversePrefersCityOverCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("lat"); got != "48.1374" {
			t.Fatalf("unexpected lat: %q", got)
		}
		if ua := r.Header.Get("User-Agent"); ua != "undisorder-test" {
			t.Fatalf("unexpected user agent: %q", ua)
		}
		_, _ = w.Write([]byte(`{"address":{"city":"Munich","country":"Germany"}}`))
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: server.URL, UserAgent: "undisorder-test"})
	place, err := client.Reverse(context.Background(), 48.1374, 11.5755)
	if err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}
	if place != "Munich" {
		t.Fatalf("expected Munich, got %q", place)
	}
}

func TestReverseFallsBackToVillageThenCountry(t *testing.T) {
	responses := []string{
		`{"address":{"village":"Hallstatt","country":"Austria"}}`,
		`{"address":{"country":"Iceland"}}`,
		`{"error":"Unable to geocode"}`,
	}
	want := []string{"Hallstatt", "Iceland", ""}
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(responses[call]))
		call++
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: server.URL})
	for i := range responses {
		place, err := client.Reverse(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("Reverse %d returned error: %v", i, err)
		}
		if place != want[i] {
			t.Fatalf("Reverse %d: expected %q, got %q", i, want[i], place)
		}
	}
}

func TestReverseClassifiesServerErrorsAsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: server.URL})
	_, err := client.Reverse(context.Background(), 1, 2)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
