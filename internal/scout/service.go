package scout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fishbig/reddit-scout/internal/config"
	"github.com/fishbig/reddit-scout/internal/models"
	"github.com/fishbig/reddit-scout/internal/reddit"
	"github.com/sirupsen/logrus"
)

const (
	// bodyPreviewLimit and replyPreviewLimit bound the text carried in
	// result documents; consumers follow the URL for the rest.
	bodyPreviewLimit  = 800
	replyPreviewLimit = 300

	// readyKarmaThreshold is the comment karma an account needs before
	// targeted replies stop reading as spam.
	readyKarmaThreshold = 50

	// lowKarmaThreshold steers the warmup suggestion toward karma
	// building until total karma clears it.
	lowKarmaThreshold = 100

	hotPostsToBrowse = 5
)

// The wording of these errors is part of the CLI's output contract.
var (
	errNotConfigured     = errors.New("Reddit credentials not configured.")
	errNotConfiguredScan = errors.New("Reddit credentials not configured. Set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET.")
)

// Service implements the scout operations on top of a Reddit session
type Service struct {
	config *config.Config
	api    reddit.API
	now    func() time.Time
}

// NewService creates a scout service. api may be nil when credentials
// are not configured; every operation then reports that instead of
// touching the network.
func NewService(cfg *config.Config, api reddit.API) *Service {
	return &Service{
		config: cfg,
		api:    api,
		now:    time.Now,
	}
}

// ScanOptions narrow a single scan. Zero values fall back to the
// configured subreddits, keywords, and per-subreddit post limit.
type ScanOptions struct {
	Subreddits []string
	Keywords   []string
	Limit      int
}

// Scan walks the newest posts of each subreddit and collects the ones
// whose title or body mentions a pain keyword, newest first. A failing
// subreddit contributes an inline error entry instead of aborting the
// scan, so one banned community does not hide leads from the others.
func (s *Service) Scan(ctx context.Context, opts ScanOptions) ([]models.ScanEntry, error) {
	if s.api == nil {
		return nil, errNotConfiguredScan
	}

	subreddits := opts.Subreddits
	if len(subreddits) == 0 {
		subreddits = s.config.Subreddits
	}
	keywords := opts.Keywords
	if len(keywords) == 0 {
		keywords = s.config.Keywords
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.ScanLimit
	}

	logrus.Infof("Scanning %d subreddits for %d keywords", len(subreddits), len(keywords))

	entries := []models.ScanEntry{}
	for _, subreddit := range subreddits {
		posts, err := s.api.NewPosts(ctx, subreddit, limit)
		if err != nil {
			logrus.Errorf("Failed to scan r/%s: %v", subreddit, err)
			entries = append(entries, models.ScanEntry{Err: &models.ErrorResult{
				Error: fmt.Sprintf("Failed to scan r/%s: %v", subreddit, err),
			}})
			continue
		}

		found := 0
		for _, post := range posts {
			matched := matchKeywords(post.Title, post.Selftext, keywords)
			if len(matched) == 0 {
				continue
			}
			entries = append(entries, models.ScanEntry{Post: s.buildOpportunity(subreddit, post, matched)})
			found++
		}
		logrus.Debugf("r/%s: %d of %d new posts matched", subreddit, found, len(posts))
	}

	// Newest first. Error entries carry no timestamp and sink to the
	// end; the stable sort keeps them in subreddit order there.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedUTC() > entries[j].CreatedUTC()
	})

	logrus.Infof("Scan finished with %d entries", len(entries))
	return entries, nil
}

func (s *Service) buildOpportunity(subreddit string, post reddit.Post, matched []string) *models.Opportunity {
	ageHours := (float64(s.now().Unix()) - post.CreatedUTC) / 3600
	return &models.Opportunity{
		ID:              post.ID,
		Title:           post.Title,
		Body:            truncate(post.Selftext, bodyPreviewLimit),
		URL:             "https://reddit.com" + post.Permalink,
		Subreddit:       subreddit,
		Score:           post.Score,
		NumComments:     post.NumComments,
		CreatedUTC:      post.CreatedUTC,
		AgeHours:        round1(ageHours),
		KeywordsMatched: matched,
	}
}

// matchKeywords reports which keywords occur in the combined title and
// body, case-insensitively. Matches keep the caller's spelling.
func matchKeywords(title, body string, keywords []string) []string {
	content := strings.ToLower(title + " " + body)

	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(content, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// Reply posts (or previews) a top-level comment on a post. It refuses
// to double-post: when the session user already commented anywhere in
// the post's tree, the reply is skipped. Read-only sessions have no
// user to check against, so the check is skipped for them.
func (s *Service) Reply(ctx context.Context, postID, text string, dryRun bool) (*models.ReplyResult, error) {
	if s.api == nil {
		return nil, errNotConfigured
	}

	post, err := s.api.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.api.Authenticated() {
		me, err := s.api.Me(ctx)
		if err != nil {
			return nil, err
		}
		comments, err := s.api.Comments(ctx, postID)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			// Deleted comments keep their body slot but lose the author.
			if comment.Author != "" && comment.Author == me.Name {
				logrus.Infof("Already replied to post %s as u/%s, skipping", postID, me.Name)
				return &models.ReplyResult{
					Status: models.ReplyStatusSkipped,
					Reason: "already_replied",
				}, nil
			}
		}
	}

	if dryRun {
		return &models.ReplyResult{
			Status:     models.ReplyStatusDryRun,
			PostTitle:  post.Title,
			PostURL:    "https://reddit.com" + post.Permalink,
			WouldReply: truncate(text, replyPreviewLimit),
		}, nil
	}

	comment, err := s.api.SubmitComment(ctx, postID, text)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Posted comment %s on post %s", comment.ID, postID)

	return &models.ReplyResult{
		Status:     models.ReplyStatusReplied,
		PostID:     postID,
		CommentID:  comment.ID,
		CommentURL: "https://reddit.com" + comment.Permalink,
	}, nil
}

// Warmup reads the account's standing and browses the site-wide hot
// feed the way a lurker would, then suggests the next step toward
// being ready to reply. Read-only sessions browse without an identity.
func (s *Service) Warmup(ctx context.Context) (*models.WarmupStatus, error) {
	if s.api == nil {
		return nil, errNotConfigured
	}

	username := "unknown"
	karma := 0
	ageDays := 0.0
	if s.api.Authenticated() {
		me, err := s.api.Me(ctx)
		if err != nil {
			return nil, err
		}
		username = me.Name
		karma = me.LinkKarma + me.CommentKarma
		ageDays = round1((float64(s.now().Unix()) - me.CreatedUTC) / 86400)
	}

	hot, err := s.api.HotPosts(ctx, "all", hotPostsToBrowse)
	if err != nil {
		return nil, err
	}
	for _, post := range hot {
		logrus.Debugf("Browsed r/%s: %s", post.Subreddit, truncate(post.Title, 100))
	}

	suggestion := "Ready for targeted replies"
	if karma < lowKarmaThreshold {
		suggestion = "Comment on these posts with genuine value to build karma"
	}

	return &models.WarmupStatus{
		Status:          "ok",
		Username:        username,
		Karma:           karma,
		AccountAgeDays:  ageDays,
		HotPostsBrowsed: len(hot),
		Suggestion:      suggestion,
	}, nil
}

// Status reports the session account's karma and age, and whether its
// comment karma clears the bar for targeted replies.
func (s *Service) Status(ctx context.Context) (*models.AccountStatus, error) {
	if s.api == nil {
		return nil, errNotConfigured
	}

	me, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AccountStatus{
		Username:       me.Name,
		LinkKarma:      me.LinkKarma,
		CommentKarma:   me.CommentKarma,
		TotalKarma:     me.LinkKarma + me.CommentKarma,
		AccountAgeDays: round1((float64(s.now().Unix()) - me.CreatedUTC) / 86400),
		IsVerified:     me.HasVerifiedEmail,
		ReadyForAction: me.CommentKarma >= readyKarmaThreshold,
	}, nil
}

// truncate clips s to at most limit characters, counting runes so a
// multi-byte character is never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
