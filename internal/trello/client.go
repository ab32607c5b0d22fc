package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/types"
)

const serviceName = "trello"

// Board is the subset of Trello's board resource the service uses.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is the subset of Trello's list resource the service uses.
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"idBoard"`
}

// Label is the subset of Trello's label resource the service uses.
type Label struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	BoardID string `json:"idBoard"`
}

// Card is the subset of Trello's card resource the service uses.
type Card struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Desc     string     `json:"desc"`
	Due      *time.Time `json:"due"`
	ListID   string     `json:"idList"`
	LabelIDs []string   `json:"idLabels"`
}

// CardRequest carries the fields for creating a card.
type CardRequest struct {
	Name        string
	Description string
	ListID      string
	Due         *time.Time
	LabelID     string
}

// CardUpdate carries the fields for updating a card. Empty fields are
// omitted from the request, matching Trello's partial-update semantics.
type CardUpdate struct {
	Name        string
	Description string
	Due         *time.Time
	LabelID     string
}

// Client talks to the Trello REST API. Authentication is a static API
// key + token pair supplied as query parameters on every call.
type Client struct {
	baseURL string
	key     string
	token   string
	http    *http.Client
}

// NewClient creates a Trello client. A nil httpClient gets a 10 second
// default timeout.
func NewClient(baseURL, key, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
		token:   token,
		http:    httpClient,
	}
}

// CreateBoard creates a board and returns its id.
func (c *Client) CreateBoard(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("name", name)

	var board Board
	if err := c.do(ctx, http.MethodPost, "/boards/", params, &board); err != nil {
		return "", err
	}
	return board.ID, nil
}

// CreateList creates a list on the given board and returns its id.
func (c *Client) CreateList(ctx context.Context, boardID, name string) (string, error) {
	params := url.Values{}
	params.Set("name", name)

	var list List
	if err := c.do(ctx, http.MethodPost, "/boards/"+boardID+"/lists", params, &list); err != nil {
		return "", err
	}
	return list.ID, nil
}

// CreateLabel creates a label on the given board.
func (c *Client) CreateLabel(ctx context.Context, boardID, name, color string) (*Label, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("color", color)
	params.Set("idBoard", boardID)

	var label Label
	if err := c.do(ctx, http.MethodPost, "/labels", params, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// UpdateLabel renames a label.
func (c *Client) UpdateLabel(ctx context.Context, labelID, name string) error {
	params := url.Values{}
	params.Set("name", name)
	return c.do(ctx, http.MethodPut, "/labels/"+labelID, params, nil)
}

// DeleteLabel deletes a label.
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	return c.do(ctx, http.MethodDelete, "/labels/"+labelID, nil, nil)
}

// CreateCard creates a card in the requested list.
func (c *Client) CreateCard(ctx context.Context, req CardRequest) (*Card, error) {
	params := url.Values{}
	params.Set("name", req.Name)
	params.Set("desc", req.Description)
	params.Set("idList", req.ListID)
	if req.Due != nil {
		params.Set("due", req.Due.UTC().Format(time.RFC3339))
	}
	if req.LabelID != "" {
		params.Set("idLabels", req.LabelID)
	}

	var card Card
	if err := c.do(ctx, http.MethodPost, "/cards", params, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard updates the card's mirrored fields.
func (c *Client) UpdateCard(ctx context.Context, cardID string, update CardUpdate) error {
	params := url.Values{}
	if update.Name != "" {
		params.Set("name", update.Name)
	}
	if update.Description != "" {
		params.Set("desc", update.Description)
	}
	if update.Due != nil {
		params.Set("due", update.Due.UTC().Format(time.RFC3339))
	}
	if update.LabelID != "" {
		params.Set("idLabels", update.LabelID)
	}
	return c.do(ctx, http.MethodPut, "/cards/"+cardID, params, nil)
}

// MoveCard moves a card to another list.
func (c *Client) MoveCard(ctx context.Context, cardID, listID string) error {
	params := url.Values{}
	params.Set("idList", listID)
	return c.do(ctx, http.MethodPut, "/cards/"+cardID, params, nil)
}

// DeleteCard deletes a card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+cardID, nil, nil)
}

// do issues one authenticated request and decodes the JSON response into
// out when out is non-nil. Non-2xx responses become ExternalServiceError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.key)
	params.Set("token", c.token)

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &types.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &types.ExternalServiceError{Service: serviceName, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
