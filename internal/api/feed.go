package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Feed retrieves the current user's feed.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Post
	if err := c.doJSON(ctx, http.MethodGet, "/feed", nil, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, text string, media []Upload) (*Post, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if text == "" && len(media) == 0 {
		return nil, fmt.Errorf("post is empty")
	}
	files := map[string]Upload{}
	for i, m := range media {
		files["media_"+strconv.Itoa(i)] = m
	}
	form, contentType, err := multipartForm(map[string]string{"text": text}, files)
	if err != nil {
		return nil, err
	}
	var payload Post
	if err := c.doForm(ctx, http.MethodPost, "/post", form, contentType, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeletePost removes one of the current user's posts.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if postID == "" {
		return fmt.Errorf("post id required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/post/"+postID, nil, nil, requestOpts{})
}

// SearchQuery configures /search requests. Zero-valued filters are omitted.
type SearchQuery struct {
	Query    string
	Category string
	Location string
	MaxPrice float64
}

// Search runs a platform-wide search across events and places.
func (c *Client) Search(ctx context.Context, query SearchQuery) ([]SearchItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if query.Query != "" {
		values.Set("query", query.Query)
	}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Location != "" {
		values.Set("location", query.Location)
	}
	if query.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatFloat(query.MaxPrice, 'f', -1, 64))
	}
	var payload []SearchItem
	if err := c.doQuery(ctx, http.MethodGet, "/search", values, &payload, requestOpts{}); err != nil {
		return nil, err
	}
	return payload, nil
}
