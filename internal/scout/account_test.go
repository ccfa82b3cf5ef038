package scout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fishbig/reddit-scout/internal/config"
	"github.com/fishbig/reddit-scout/internal/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addHotPosts(fake *reddit.Fake, n int) {
	for i := 0; i < n; i++ {
		fake.AddHot("all", reddit.Post{
			ID:         fmt.Sprintf("hot%d", i),
			Title:      fmt.Sprintf("Trending thing %d", i),
			Subreddit:  "pics",
			CreatedUTC: float64(testNow - i*60),
		})
	}
}

func TestService_Warmup_AuthenticatedLowKarma(t *testing.T) {
	fake := reddit.NewFake()
	fake.Auth = true
	fake.Account = reddit.Account{
		Name:         "fishbig",
		LinkKarma:    40,
		CommentKarma: 15,
		CreatedUTC:   testNow - 30*86400,
	}
	addHotPosts(fake, 5)

	svc := newTestService(fake)
	status, err := svc.Warmup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "fishbig", status.Username)
	assert.Equal(t, 55, status.Karma)
	assert.Equal(t, 30.0, status.AccountAgeDays)
	assert.Equal(t, 5, status.HotPostsBrowsed)
	assert.Equal(t, "Comment on these posts with genuine value to build karma", status.Suggestion)
}

func TestService_Warmup_SuggestionThreshold(t *testing.T) {
	tests := []struct {
		name       string
		karma      int
		suggestion string
	}{
		{"well below", 55, "Comment on these posts with genuine value to build karma"},
		{"just below", 99, "Comment on these posts with genuine value to build karma"},
		{"at threshold", 100, "Ready for targeted replies"},
		{"above", 150, "Ready for targeted replies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := reddit.NewFake()
			fake.Auth = true
			fake.Account = reddit.Account{Name: "fishbig", LinkKarma: tt.karma, CreatedUTC: testNow - 86400}
			addHotPosts(fake, 3)

			svc := newTestService(fake)
			status, err := svc.Warmup(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.karma, status.Karma)
			assert.Equal(t, tt.suggestion, status.Suggestion)
		})
	}
}

func TestService_Warmup_ReadOnlyStillBrowses(t *testing.T) {
	fake := reddit.NewFake()
	fake.MeErr = errors.New("me must not be called")
	addHotPosts(fake, 2)

	svc := newTestService(fake)
	status, err := svc.Warmup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "unknown", status.Username)
	assert.Equal(t, 0, status.Karma)
	assert.Equal(t, 0.0, status.AccountAgeDays)
	assert.Equal(t, 2, status.HotPostsBrowsed)
	assert.Equal(t, "Comment on these posts with genuine value to build karma", status.Suggestion)
}

func TestService_Warmup_HotFeedError(t *testing.T) {
	fake := reddit.NewFake()
	fake.Auth = true
	fake.Account = reddit.Account{Name: "fishbig"}
	fake.HotErr = errors.New("reddit API returned status 503")

	svc := newTestService(fake)
	_, err := svc.Warmup(context.Background())
	require.EqualError(t, err, "reddit API returned status 503")
}

func TestService_Warmup_NotConfigured(t *testing.T) {
	svc := NewService(&config.Config{}, nil)
	_, err := svc.Warmup(context.Background())
	require.EqualError(t, err, "Reddit credentials not configured.")
}

func TestService_Status_ReportsAccount(t *testing.T) {
	fake := reddit.NewFake()
	fake.Auth = true
	fake.Account = reddit.Account{
		Name:             "fishbig",
		LinkKarma:        120,
		CommentKarma:     80,
		CreatedUTC:       testNow - 200*86400,
		HasVerifiedEmail: true,
	}

	svc := newTestService(fake)
	status, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fishbig", status.Username)
	assert.Equal(t, 120, status.LinkKarma)
	assert.Equal(t, 80, status.CommentKarma)
	assert.Equal(t, 200, status.TotalKarma)
	assert.Equal(t, 200.0, status.AccountAgeDays)
	assert.True(t, status.IsVerified)
	assert.True(t, status.ReadyForAction)
}

func TestService_Status_RoundsAgeToTenths(t *testing.T) {
	fake := reddit.NewFake()
	fake.Auth = true
	// 100000 seconds is 1.157 days, which rounds to 1.2.
	fake.Account = reddit.Account{Name: "fishbig", CreatedUTC: testNow - 100000}

	svc := newTestService(fake)
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.2, status.AccountAgeDays)
}

func TestService_Status_ReadinessRequiresCommentKarma(t *testing.T) {
	tests := []struct {
		name         string
		linkKarma    int
		commentKarma int
		ready        bool
	}{
		{"link karma alone is not enough", 500, 0, false},
		{"modest mixed karma", 40, 15, false},
		{"just below threshold", 0, 49, false},
		{"at threshold", 0, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := reddit.NewFake()
			fake.Auth = true
			fake.Account = reddit.Account{
				Name:         "fishbig",
				LinkKarma:    tt.linkKarma,
				CommentKarma: tt.commentKarma,
				CreatedUTC:   testNow - 86400,
			}

			svc := newTestService(fake)
			status, err := svc.Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.ready, status.ReadyForAction)
		})
	}
}

func TestService_Status_ReadOnlySession(t *testing.T) {
	fake := reddit.NewFake()

	svc := newTestService(fake)
	_, err := svc.Status(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, reddit.ErrNotAuthenticated)
	assert.EqualError(t, err, "not authenticated: set REDDIT_USERNAME and REDDIT_PASSWORD for a script session")
}

func TestService_Status_NotConfigured(t *testing.T) {
	svc := NewService(&config.Config{}, nil)
	_, err := svc.Status(context.Background())
	require.EqualError(t, err, "Reddit credentials not configured.")
}
