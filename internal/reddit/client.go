package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIBase  = "https://oauth.reddit.com"

	// Reddit caps /api/morechildren at 100 ids per call.
	moreChildrenBatch = 100
)

// Client talks to the Reddit API over OAuth2. The grant is chosen from
// the credentials: password grant when username and password are set,
// client_credentials otherwise.
type Client struct {
	creds       Credentials
	userAgent   string
	client      *resty.Client
	accessToken string

	// Endpoints are fields so tests can point the client at a local server.
	tokenURL string
	apiBase  string
}

var _ API = (*Client)(nil)

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// NewClient creates a Reddit API client. The user agent is sent on every
// request; Reddit throttles clients with generic ones.
func NewClient(creds Credentials, userAgent string, timeout time.Duration) *Client {
	return &Client{
		creds:     creds,
		userAgent: userAgent,
		client:    resty.New().SetTimeout(timeout),
		tokenURL:  defaultTokenURL,
		apiBase:   defaultAPIBase,
	}
}

func (c *Client) Authenticated() bool {
	return c.creds.Username != "" && c.creds.Password != ""
}

func (c *Client) authenticate(ctx context.Context) error {
	grant := map[string]string{"grant_type": "client_credentials"}
	if c.Authenticated() {
		grant = map[string]string{
			"grant_type": "password",
			"username":   c.creds.Username,
			"password":   c.creds.Password,
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent).
		SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret).
		SetFormData(grant).
		Post(c.tokenURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("reddit token endpoint returned status %d", resp.StatusCode())
	}

	var auth authResponse
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		return err
	}
	if auth.AccessToken == "" {
		if auth.Error != "" {
			return fmt.Errorf("reddit rejected the credentials: %s", auth.Error)
		}
		return fmt.Errorf("reddit token endpoint returned no access token")
	}

	c.accessToken = auth.AccessToken
	logrus.Debugf("Authenticated with Reddit using %s grant", grant["grant_type"])
	return nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.accessToken != "" {
		return nil
	}
	if err := c.authenticate(ctx); err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}
	return nil
}

// get performs an authenticated GET against the API host. Reddit
// HTML-escapes text fields unless raw_json is set, so it always is.
func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.accessToken).
		SetHeader("User-Agent", c.userAgent).
		SetQueryParam("raw_json", "1").
		SetQueryParams(query).
		Get(c.apiBase + path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func (c *Client) postForm(ctx context.Context, path string, form map[string]string) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.accessToken).
		SetHeader("User-Agent", c.userAgent).
		SetQueryParam("raw_json", "1").
		SetFormData(form).
		Post(c.apiBase + path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func decodeListing(body []byte) ([]Post, error) {
	var listing listingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func (c *Client) NewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	body, err := c.get(ctx, fmt.Sprintf("/r/%s/new", subreddit), map[string]string{
		"limit": strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}
	return decodeListing(body)
}

func (c *Client) HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	body, err := c.get(ctx, fmt.Sprintf("/r/%s/hot", subreddit), map[string]string{
		"limit": strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}
	return decodeListing(body)
}

func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	// /comments/{id} answers with a two-element array: the submission
	// listing, then the comment forest.
	body, err := c.get(ctx, "/comments/"+id, map[string]string{"limit": "1"})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "0.data.children.0.data")
	if !data.Exists() {
		return nil, fmt.Errorf("post %s not found", id)
	}

	var post Post
	if err := json.Unmarshal([]byte(data.Raw), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Comments(ctx context.Context, postID string) ([]Comment, error) {
	body, err := c.get(ctx, "/comments/"+postID, map[string]string{"limit": "500"})
	if err != nil {
		return nil, err
	}

	var comments []Comment
	var pending []string
	collectForest(gjson.GetBytes(body, "1.data.children"), &comments, &pending)

	for len(pending) > 0 {
		batch := pending
		if len(batch) > moreChildrenBatch {
			batch = batch[:moreChildrenBatch]
		}
		pending = pending[len(batch):]
		logrus.Debugf("Expanding %d collapsed comment ids on post %s", len(batch), postID)

		body, err := c.postForm(ctx, "/api/morechildren", map[string]string{
			"api_type": "json",
			"link_id":  "t3_" + postID,
			"children": strings.Join(batch, ","),
		})
		if err != nil {
			return nil, err
		}
		collectForest(gjson.GetBytes(body, "json.data.things"), &comments, &pending)
	}

	return comments, nil
}

// collectForest flattens a comment listing, queueing the ids hidden
// behind "more" placeholders for a later /api/morechildren call. A
// comment's replies field serializes as "" when empty, so presence is
// checked before descending.
func collectForest(children gjson.Result, comments *[]Comment, pending *[]string) {
	for _, child := range children.Array() {
		data := child.Get("data")
		switch child.Get("kind").String() {
		case "t1":
			*comments = append(*comments, Comment{
				ID:         data.Get("id").String(),
				Author:     data.Get("author").String(),
				Body:       data.Get("body").String(),
				Permalink:  data.Get("permalink").String(),
				CreatedUTC: data.Get("created_utc").Float(),
			})
			if replies := data.Get("replies"); replies.IsObject() {
				collectForest(replies.Get("data.children"), comments, pending)
			}
		case "more":
			for _, id := range data.Get("children").Array() {
				*pending = append(*pending, id.String())
			}
		}
	}
}

func (c *Client) Me(ctx context.Context) (*Account, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	body, err := c.get(ctx, "/api/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) SubmitComment(ctx context.Context, postID, text string) (*Comment, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	body, err := c.postForm(ctx, "/api/comment", map[string]string{
		"api_type": "json",
		"thing_id": "t3_" + postID,
		"text":     text,
	})
	if err != nil {
		return nil, err
	}

	// Comment failures (rate limits, locked threads) come back inside a
	// 200 response as json.errors tuples.
	if errs := gjson.GetBytes(body, "json.errors").Array(); len(errs) > 0 {
		parts := make([]string, 0, 3)
		for _, p := range errs[0].Array() {
			if p.String() != "" {
				parts = append(parts, p.String())
			}
		}
		return nil, fmt.Errorf("reddit rejected the comment: %s", strings.Join(parts, ": "))
	}

	data := gjson.GetBytes(body, "json.data.things.0.data")
	if !data.Exists() {
		return nil, fmt.Errorf("reddit returned no comment data")
	}
	return &Comment{
		ID:         data.Get("id").String(),
		Author:     data.Get("author").String(),
		Body:       data.Get("body").String(),
		Permalink:  data.Get("permalink").String(),
		CreatedUTC: data.Get("created_utc").Float(),
	}, nil
}
