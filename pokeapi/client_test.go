package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/122" {
			http.NotFound(w, r)
			return
		}

		fmt.Fprint(w, `{
			"id": 122,
			"name": "mr-mime",
			"sprites": {
				"front_default": "https://sprites.test/122.png",
				"other": {
					"official-artwork": {
						"front_default": "https://art.test/122.png"
					}
				}
			}
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	record, err := client.Resolve(context.Background(), 122)
	if err != nil {
		t.Fatalf("resolve failed: %s", err)
	}

	if record.ID != 122 {
		t.Errorf("expected id 122, got %d", record.ID)
	}
	if record.Name != "Mr Mime" {
		t.Errorf("expected formatted name, got %q", record.Name)
	}
	if record.Sprite != "https://art.test/122.png" {
		t.Errorf("expected the official artwork sprite, got %q", record.Sprite)
	}
}

func TestResolveSpriteFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"id": 25,
			"name": "pikachu",
			"sprites": {"front_default": "https://sprites.test/25.png", "other": {"official-artwork": {"front_default": ""}}}
		}`)
	}))
	defer server.Close()

	record, err := NewClient(server.URL).Resolve(context.Background(), 25)
	if err != nil {
		t.Fatalf("resolve failed: %s", err)
	}
	if record.Sprite != "https://sprites.test/25.png" {
		t.Errorf("expected fallback to the front sprite, got %q", record.Sprite)
	}
}

func TestResolveNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).Resolve(context.Background(), 9999); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestFormatName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"pikachu", "Pikachu"},
		{"mr-mime", "Mr Mime"},
		{"nidoran-f", "Nidoran F"},
		{"farfetchd", "Farfetchd"},
	}

	for _, c := range cases {
		if got := FormatName(c.raw); got != c.want {
			t.Errorf("FormatName(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
