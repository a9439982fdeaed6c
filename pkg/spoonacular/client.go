package spoonacular

import (
	"Recipe-Hub-Backend/domain"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.spoonacular.com/recipes"

type (
	// Recipe mirrors the relevant part of the Spoonacular payload. Dietary
	// flags absent from the response decode to false.
	Recipe struct {
		ID                  int    `json:"id"`
		Title               string `json:"title"`
		Image               string `json:"image"`
		ReadyInMinutes      int    `json:"readyInMinutes"`
		Vegan               bool   `json:"vegan"`
		Vegetarian          bool   `json:"vegetarian"`
		GlutenFree          bool   `json:"glutenFree"`
		Servings            int    `json:"servings"`
		Summary             string `json:"summary"`
		Instructions        string `json:"instructions"`
		ExtendedIngredients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"extendedIngredients"`
	}

	SearchFilters struct {
		Cuisine      string
		Diet         string
		Intolerances string
		SortBy       string
	}

	Client struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", domain.ErrUpstreamUnavailable, endpoint, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchByID retrieves the full recipe information for one recipe.
func (c *Client) FetchByID(ctx context.Context, id string) (Recipe, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")

	var recipe Recipe
	if err := c.get(ctx, fmt.Sprintf("/%s/information", id), params, &recipe); err != nil {
		return Recipe{}, err
	}
	return recipe, nil
}

func (c *Client) FetchRandom(ctx context.Context, count int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(count))
	params.Set("includeNutrition", "false")

	var response struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := c.get(ctx, "/random", params, &response); err != nil {
		return nil, err
	}
	return response.Recipes, nil
}

// Search queries the complexSearch endpoint. Results are restricted to
// recipes that carry instructions; sorting by "time" maps to Spoonacular's
// ascending readyInMinutes sort, anything else keeps relevance ordering.
func (c *Client) Search(ctx context.Context, query string, filters SearchFilters, limit int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(limit))
	params.Set("instructionsRequired", "true")
	if filters.Cuisine != "" {
		params.Set("cuisine", filters.Cuisine)
	}
	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	if filters.Intolerances != "" {
		params.Set("intolerances", filters.Intolerances)
	}
	if filters.SortBy == "time" {
		params.Set("sort", "readyInMinutes")
	}

	var response struct {
		Results []Recipe `json:"results"`
	}
	if err := c.get(ctx, "/complexSearch", params, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}
