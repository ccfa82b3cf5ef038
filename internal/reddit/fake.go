package reddit

import (
	"context"
	"fmt"
)

// Fake is an in-memory API for tests and local harnesses. Seed it with
// AddPost/AddHot/AddComment, then point error fields at whatever should
// fail. Submitted comments are appended to the post's forest, so a
// duplicate check after a submission sees the new comment.
type Fake struct {
	Auth    bool
	Account Account

	// Error injection. ListingErr applies per subreddit to NewPosts.
	ListingErr  map[string]error
	HotErr      error
	PostErr     error
	CommentsErr error
	MeErr       error
	SubmitErr   error

	// Submitted records every SubmitComment call in order.
	Submitted []SubmittedReply

	newListings map[string][]Post
	hotListings map[string][]Post
	postsByID   map[string]Post
	forests     map[string][]Comment
	nextID      int
}

var _ API = (*Fake)(nil)

// SubmittedReply is one recorded SubmitComment call.
type SubmittedReply struct {
	PostID string
	Text   string
}

func NewFake() *Fake {
	return &Fake{
		ListingErr:  make(map[string]error),
		newListings: make(map[string][]Post),
		hotListings: make(map[string][]Post),
		postsByID:   make(map[string]Post),
		forests:     make(map[string][]Comment),
	}
}

// AddPost appends a submission to its subreddit's new listing. Callers
// seed newest first, matching the live endpoint's order.
func (f *Fake) AddPost(p Post) {
	f.newListings[p.Subreddit] = append(f.newListings[p.Subreddit], p)
	f.postsByID[p.ID] = p
}

// AddHot appends a submission to a subreddit's hot listing. Use the
// pseudo-subreddit "all" for the site-wide feed.
func (f *Fake) AddHot(subreddit string, p Post) {
	f.hotListings[subreddit] = append(f.hotListings[subreddit], p)
	f.postsByID[p.ID] = p
}

// AddComment appends a comment to a submission's flattened forest.
func (f *Fake) AddComment(postID string, c Comment) {
	f.forests[postID] = append(f.forests[postID], c)
}

func (f *Fake) Authenticated() bool {
	return f.Auth
}

func (f *Fake) NewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	if err := f.ListingErr[subreddit]; err != nil {
		return nil, err
	}
	return clipListing(f.newListings[subreddit], limit), nil
}

func (f *Fake) HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	if f.HotErr != nil {
		return nil, f.HotErr
	}
	return clipListing(f.hotListings[subreddit], limit), nil
}

func (f *Fake) Post(ctx context.Context, id string) (*Post, error) {
	if f.PostErr != nil {
		return nil, f.PostErr
	}
	p, ok := f.postsByID[id]
	if !ok {
		return nil, fmt.Errorf("post %s not found", id)
	}
	return &p, nil
}

func (f *Fake) Comments(ctx context.Context, postID string) ([]Comment, error) {
	if f.CommentsErr != nil {
		return nil, f.CommentsErr
	}
	return append([]Comment(nil), f.forests[postID]...), nil
}

func (f *Fake) Me(ctx context.Context) (*Account, error) {
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	if !f.Auth {
		return nil, ErrNotAuthenticated
	}
	account := f.Account
	return &account, nil
}

func (f *Fake) SubmitComment(ctx context.Context, postID, text string) (*Comment, error) {
	if f.SubmitErr != nil {
		return nil, f.SubmitErr
	}
	if !f.Auth {
		return nil, ErrNotAuthenticated
	}

	f.Submitted = append(f.Submitted, SubmittedReply{PostID: postID, Text: text})
	f.nextID++

	subreddit := "unknown"
	if p, ok := f.postsByID[postID]; ok {
		subreddit = p.Subreddit
	}
	c := Comment{
		ID:        fmt.Sprintf("fake%d", f.nextID),
		Author:    f.Account.Name,
		Body:      text,
		Permalink: fmt.Sprintf("/r/%s/comments/%s/_/fake%d/", subreddit, postID, f.nextID),
	}
	f.AddComment(postID, c)
	return &c, nil
}

func clipListing(posts []Post, limit int) []Post {
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return append([]Post(nil), posts...)
}
