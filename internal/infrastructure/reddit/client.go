// Package reddit implements the ContentSource port against the Reddit JSON
// API, using the application-only OAuth2 flow.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/config"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"

	// moreBatchSize is the API's cap on children per morechildren call.
	moreBatchSize = 100
	// requestDelay keeps the client inside Reddit's rate limits.
	requestDelay = time.Second
)

// Client talks to the Reddit API.
type Client struct {
	httpClient *http.Client
	authURL    string
	apiURL     string

	clientID     string
	clientSecret string
	userAgent    string

	token       string
	tokenExpiry time.Time
	lastRequest time.Time
}

// NewClient creates a Reddit client from credentials.
func NewClient(cfg config.RedditConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("Reddit client ID and secret are required")
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "brandgraph/0.1"
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		authURL:      defaultAuthURL,
		apiURL:       defaultAPIURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    userAgent,
	}, nil
}

// Search returns posts matching the query, in source order.
func (c *Client) Search(ctx context.Context, q ports.Query) ([]entities.Post, error) {
	params := url.Values{
		"q":           {q.Term},
		"restrict_sr": {"1"},
		"raw_json":    {"1"},
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.TimeFilter != "" {
		params.Set("t", q.TimeFilter)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var listing thing
	path := fmt.Sprintf("/r/%s/search", url.PathEscape(q.Subreddit))
	if err := c.get(ctx, path, params, &listing); err != nil {
		return nil, fmt.Errorf("searching r/%s: %w", q.Subreddit, err)
	}

	children, err := listing.children()
	if err != nil {
		return nil, fmt.Errorf("decoding search listing: %w", err)
	}

	posts := make([]entities.Post, 0, len(children))
	for _, child := range children {
		if child.Kind != "t3" {
			continue
		}
		var p postData
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("decoding post: %w", err)
		}
		posts = append(posts, p.toPost())
	}
	return posts, nil
}

// FetchThread returns the full post body and the fully expanded comment tree
// for one post. "Load more" stubs are expanded eagerly until none remain.
func (c *Client) FetchThread(ctx context.Context, postID string) (*entities.Thread, error) {
	params := url.Values{
		"limit":    {"500"},
		"raw_json": {"1"},
	}

	var page []thing
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), params, &page); err != nil {
		return nil, fmt.Errorf("fetching thread %s: %w", postID, err)
	}
	if len(page) < 2 {
		return nil, fmt.Errorf("thread %s: unexpected response shape", postID)
	}

	postChildren, err := page[0].children()
	if err != nil || len(postChildren) == 0 {
		return nil, fmt.Errorf("thread %s: missing post listing", postID)
	}
	var p postData
	if err := json.Unmarshal(postChildren[0].Data, &p); err != nil {
		return nil, fmt.Errorf("decoding post %s: %w", postID, err)
	}

	commentChildren, err := page[1].children()
	if err != nil {
		return nil, fmt.Errorf("thread %s: decoding comment listing: %w", postID, err)
	}

	var comments []entities.Comment
	var pending []string
	if err := walkComments(commentChildren, &comments, &pending); err != nil {
		return nil, fmt.Errorf("thread %s: %w", postID, err)
	}

	// Expand "load more" stubs until the tree is fully materialized.
	for len(pending) > 0 {
		batch := pending
		if len(batch) > moreBatchSize {
			batch = batch[:moreBatchSize]
		}
		pending = pending[len(batch):]

		more, err := c.moreChildren(ctx, postID, batch)
		if err != nil {
			return nil, fmt.Errorf("thread %s: expanding comments: %w", postID, err)
		}
		if err := walkComments(more, &comments, &pending); err != nil {
			return nil, fmt.Errorf("thread %s: %w", postID, err)
		}
	}

	return &entities.Thread{
		PostID:        postID,
		Post:          p.toPost(),
		FullSelftext:  p.Selftext,
		Comments:      comments,
		TotalComments: len(comments),
	}, nil
}

// moreChildren resolves one batch of "load more" stub IDs.
func (c *Client) moreChildren(ctx context.Context, postID string, ids []string) ([]thing, error) {
	params := url.Values{
		"api_type": {"json"},
		"link_id":  {"t3_" + postID},
		"children": {strings.Join(ids, ",")},
		"raw_json": {"1"},
	}

	var payload struct {
		JSON struct {
			Data struct {
				Things []thing `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := c.get(ctx, "/api/morechildren", params, &payload); err != nil {
		return nil, err
	}
	return payload.JSON.Data.Things, nil
}

// get issues one authenticated API request, pacing calls a second apart.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	if wait := requestDelay - time.Since(c.lastRequest); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	c.lastRequest = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reddit API %s: status %d: %s", path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// ensureToken fetches or refreshes the application-only OAuth2 token.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requesting access token: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decoding access token: %w", err)
	}
	if payload.AccessToken == "" {
		return errors.New("empty access token from Reddit")
	}

	c.token = payload.AccessToken
	// Refresh one minute early.
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - time.Minute)
	return nil
}
