package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Item kinds accepted by SearchItem.
const (
	KindMovie  = "Movie"
	KindSeries = "Series"
)

// SearchResult identifies a catalog item found by name.
type SearchResult struct {
	ID       string
	ParentID string // containing library folder, used for classification
}

// ItemDetails holds the classification-relevant metadata of an item.
type ItemDetails struct {
	ID     string
	Name   string
	Genres []string
	Tags   []string
}

// SearchItem finds the best catalog match for a name. Returns ErrNotFound
// (wrapped) when the search yields nothing.
func (c *Client) SearchItem(ctx context.Context, name, kind string) (*SearchResult, error) {
	query := url.Values{}
	query.Set("searchTerm", name)
	query.Set("IncludeItemTypes", kind)
	query.Set("Recursive", "true")
	query.Set("Limit", "1")
	query.Set("Fields", "ParentId")

	body, err := c.doRequest(ctx, "/Items", query)
	if err != nil {
		return nil, wrapError("searchItem", name, err)
	}

	var resp struct {
		Items []struct {
			ID       string `json:"Id"`
			ParentID string `json:"ParentId"`
		} `json:"Items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("searchItem", name, fmt.Errorf("parse response: %w", err))
	}
	if len(resp.Items) == 0 {
		return nil, wrapError("searchItem", name, ErrNotFound)
	}

	return &SearchResult{
		ID:       resp.Items[0].ID,
		ParentID: resp.Items[0].ParentID,
	}, nil
}

// ItemDetails fetches the genres and tags of an item.
func (c *Client) ItemDetails(ctx context.Context, itemID string) (*ItemDetails, error) {
	body, err := c.doRequest(ctx, "/Items/"+url.PathEscape(itemID), nil)
	if err != nil {
		return nil, wrapError("itemDetails", itemID, err)
	}

	var resp struct {
		ID     string   `json:"Id"`
		Name   string   `json:"Name"`
		Genres []string `json:"Genres"`
		Tags   []string `json:"Tags"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("itemDetails", itemID, fmt.Errorf("parse response: %w", err))
	}

	return &ItemDetails{
		ID:     resp.ID,
		Name:   resp.Name,
		Genres: resp.Genres,
		Tags:   resp.Tags,
	}, nil
}

// PrimaryImage downloads the primary poster image bytes of an item.
func (c *Client) PrimaryImage(ctx context.Context, itemID string) ([]byte, error) {
	body, err := c.doRequest(ctx, "/Items/"+url.PathEscape(itemID)+"/Images/Primary", nil)
	if err != nil {
		return nil, wrapError("primaryImage", itemID, err)
	}
	return body, nil
}

// UserName resolves a user id to its display name.
func (c *Client) UserName(ctx context.Context, userID string) (string, error) {
	body, err := c.doRequest(ctx, "/Users/"+url.PathEscape(userID), nil)
	if err != nil {
		return "", wrapError("userName", userID, err)
	}

	var resp struct {
		Name string `json:"Name"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", wrapError("userName", userID, fmt.Errorf("parse response: %w", err))
	}
	return resp.Name, nil
}
