package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fishbig/reddit-scout/internal/config"
	"github.com/fishbig/reddit-scout/internal/reddit"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔎 Reddit Scout - API Connectivity Test")
	fmt.Println("=======================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.Configured() {
		fmt.Println("\n⚠️  DISABLED (set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET)")
		return
	}

	client := reddit.NewClient(reddit.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
	}, cfg.UserAgent(), cfg.RequestTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing Reddit endpoints...")
	fmt.Println(strings.Repeat("-", 40))

	testListing(ctx, client, cfg.Subreddits[0])
	testHotFeed(ctx, client)
	testIdentity(ctx, client)

	fmt.Println("\n✅ API connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Run 'go run cmd/reddit-scout/main.go scan' for a full scan")
	fmt.Println("   • Add REDDIT_USERNAME and REDDIT_PASSWORD to enable replies")
}

func testListing(ctx context.Context, client *reddit.Client, subreddit string) {
	fmt.Printf("🔸 Testing /r/%s/new... ", subreddit)

	posts, err := client.NewPosts(ctx, subreddit, 5)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d posts)\n", len(posts))
	if len(posts) > 0 {
		fmt.Printf("   📝 Sample: \"%s\"\n", posts[0].Title)
	}
}

func testHotFeed(ctx context.Context, client *reddit.Client) {
	fmt.Print("🔸 Testing /r/all/hot... ")

	posts, err := client.HotPosts(ctx, "all", 5)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d posts)\n", len(posts))
	if len(posts) > 0 {
		fmt.Printf("   📝 Sample: \"%s\"\n", posts[0].Title)
	}
}

func testIdentity(ctx context.Context, client *reddit.Client) {
	fmt.Print("🔸 Testing /api/v1/me... ")

	if !client.Authenticated() {
		fmt.Println("⚠️  SKIPPED (read-only session, no username/password)")
		return
	}

	account, err := client.Me(ctx)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (logged in as /u/%s, %d comment karma)\n", account.Name, account.CommentKarma)
}
