package models

import "encoding/json"

// Reply statuses reported by the reply operation.
const (
	ReplyStatusSkipped = "skipped" // a comment by the session user already exists
	ReplyStatusDryRun  = "dry_run" // preview only, nothing was posted
	ReplyStatusReplied = "replied" // a comment was posted
)

// Opportunity represents a post whose text matched at least one pain keyword
type Opportunity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Body            string   `json:"body"` // selftext, truncated for transport
	URL             string   `json:"url"`
	Subreddit       string   `json:"subreddit"`
	Score           int      `json:"score"`
	NumComments     int      `json:"num_comments"`
	CreatedUTC      float64  `json:"created_utc"`
	AgeHours        float64  `json:"age_hours"`
	KeywordsMatched []string `json:"keywords_matched"`
}

// ErrorResult is the single-key error document emitted on failures
type ErrorResult struct {
	Error string `json:"error"`
}

// ScanEntry is one element of a scan report: either a matched post or an
// inline failure for the subreddit that produced it. Exactly one of the
// two fields is set.
type ScanEntry struct {
	Post *Opportunity
	Err  *ErrorResult
}

// MarshalJSON flattens the entry to whichever variant is populated, so a
// scan report serializes as a mixed list of posts and error objects.
func (e ScanEntry) MarshalJSON() ([]byte, error) {
	if e.Err != nil {
		return json.Marshal(e.Err)
	}
	return json.Marshal(e.Post)
}

// CreatedUTC returns the entry's creation timestamp for ordering.
// Failure entries have no timestamp and sort after every real post.
func (e ScanEntry) CreatedUTC() float64 {
	if e.Post != nil {
		return e.Post.CreatedUTC
	}
	return 0
}

// ReplyResult represents the outcome of a reply attempt. The populated
// fields depend on Status: skipped carries Reason, dry_run carries the
// post preview, replied carries the posted comment's coordinates.
type ReplyResult struct {
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	PostTitle  string `json:"post_title,omitempty"`
	PostURL    string `json:"post_url,omitempty"`
	WouldReply string `json:"would_reply,omitempty"`
	PostID     string `json:"post_id,omitempty"`
	CommentID  string `json:"comment_id,omitempty"`
	CommentURL string `json:"comment_url,omitempty"`
}

// WarmupStatus represents a completed warmup pass
type WarmupStatus struct {
	Status          string  `json:"status"`
	Username        string  `json:"username"`
	Karma           int     `json:"karma"`
	AccountAgeDays  float64 `json:"account_age_days"`
	HotPostsBrowsed int     `json:"hot_posts_browsed"`
	Suggestion      string  `json:"suggestion"`
}

// AccountStatus represents the session account's standing
type AccountStatus struct {
	Username       string  `json:"username"`
	LinkKarma      int     `json:"link_karma"`
	CommentKarma   int     `json:"comment_karma"`
	TotalKarma     int     `json:"total_karma"`
	AccountAgeDays float64 `json:"account_age_days"`
	IsVerified     bool    `json:"is_verified"`
	ReadyForAction bool    `json:"ready_for_action"`
}
