// Package pokeapi resolves pokedex numbers against the public PokeAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sagewynn/whosthat/porygon"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Resolve(ctx context.Context, id int) (porygon.Record, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.BaseURL, id)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return porygon.Record{}, err
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return porygon.Record{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return porygon.Record{}, fmt.Errorf("pokeapi returned %s for id %d", response.Status, id)
	}

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return porygon.Record{}, err
	}

	parsed := pokemonResponse{}
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		return porygon.Record{}, fmt.Errorf("could not parse pokeapi response for id %d: %w", id, err)
	}

	return porygon.Record{
		ID:     parsed.ID,
		Name:   FormatName(parsed.Name),
		Sprite: parsed.sprite(),
	}, nil
}

// FormatName turns a raw api name like "mr-mime" into "Mr Mime".
func FormatName(raw string) string {
	titleCaser := cases.Title(language.English)

	parts := strings.Split(raw, "-")
	for i, part := range parts {
		parts[i] = titleCaser.String(part)
	}

	return strings.Join(parts, " ")
}
