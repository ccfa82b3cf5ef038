package reddit

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned by operations that need a user
// identity when the session was built without username and password.
var ErrNotAuthenticated = errors.New("not authenticated: set REDDIT_USERNAME and REDDIT_PASSWORD for a script session")

// Credentials carry everything needed to open an API session. Username
// and Password are optional; leaving them empty yields a read-only
// session that can browse but not post.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Post is a submission as served by the listing endpoints.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Comment is a single comment from a submission's tree.
type Comment struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// Account is the authenticated user's own profile.
type Account struct {
	Name             string  `json:"name"`
	LinkKarma        int     `json:"link_karma"`
	CommentKarma     int     `json:"comment_karma"`
	CreatedUTC       float64 `json:"created_utc"`
	HasVerifiedEmail bool    `json:"has_verified_email"`
}

// API interface defines the slice of the Reddit API the scout needs
type API interface {
	// Authenticated reports whether the session acts as a user rather
	// than an anonymous application.
	Authenticated() bool

	// NewPosts returns up to limit of a subreddit's newest submissions,
	// newest first.
	NewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)

	// HotPosts returns up to limit of a subreddit's current hot
	// submissions. The pseudo-subreddit "all" spans the whole site.
	HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)

	// Post fetches a single submission by its base-36 id.
	Post(ctx context.Context, id string) (*Post, error)

	// Comments returns every comment on a submission as a flat list,
	// resolving "more comments" placeholders until none remain.
	Comments(ctx context.Context, postID string) ([]Comment, error)

	// Me returns the session user's profile. Read-only sessions have no
	// user and get ErrNotAuthenticated.
	Me(ctx context.Context) (*Account, error)

	// SubmitComment posts a top-level reply on a submission and returns
	// the created comment. Read-only sessions get ErrNotAuthenticated.
	SubmitComment(ctx context.Context, postID, text string) (*Comment, error)
}
