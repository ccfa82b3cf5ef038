package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fishbig/reddit-scout/internal/config"
	"github.com/fishbig/reddit-scout/internal/models"
	"github.com/fishbig/reddit-scout/internal/reddit"
	"github.com/fishbig/reddit-scout/internal/scout"
)

func main() {
	fmt.Println("🔎 Reddit Scout - Offline Scan Demo")
	fmt.Println("===================================")

	// Create test configuration
	cfg := &config.Config{
		ClientID:     "demo-client",
		ClientSecret: "demo-secret",
		Subreddits:   []string{"SaaS", "startups", "smallbusiness"},
		Keywords:     config.DefaultPainKeywords,
		ScanLimit:    25,
	}

	// Seed a fake Reddit with sample posts
	now := float64(time.Now().Unix())
	fake := reddit.NewFake()
	fake.Auth = true
	fake.Account = reddit.Account{
		Name:         "demo_account",
		LinkKarma:    40,
		CommentKarma: 15,
		CreatedUTC:   now - 45*86400,
	}

	samplePosts := []reddit.Post{
		{
			ID:          "demo1",
			Title:       "Looking for a tool to track competitor prices",
			Selftext:    "I check their sites by hand every morning. Is there a tool that does price tracking for small stores?",
			Author:      "shop_owner_42",
			Subreddit:   "SaaS",
			Permalink:   "/r/SaaS/comments/demo1/looking_for_a_tool/",
			CreatedUTC:  now - 2*3600,
			Score:       12,
			NumComments: 4,
		},
		{
			ID:         "demo2",
			Title:      "Show-off Saturday: my landing page redesign",
			Selftext:   "Took three weekends but it finally feels right.",
			Author:     "pixel_pusher",
			Subreddit:  "SaaS",
			Permalink:  "/r/SaaS/comments/demo2/show_off_saturday/",
			CreatedUTC: now - 5*3600,
			Score:      88,
		},
		{
			ID:          "demo3",
			Title:       "How do I automate invoice reminders?",
			Selftext:    "Chasing late payers by email eats half my Friday.",
			Author:      "freelance_fi",
			Subreddit:   "startups",
			Permalink:   "/r/startups/comments/demo3/how_do_i_automate/",
			CreatedUTC:  now - 3600,
			Score:       31,
			NumComments: 9,
		},
		{
			ID:          "demo4",
			Title:       "Anyone know a good scraping service for product data?",
			Selftext:    "Building a catalog and copy-pasting specs is killing me.",
			Author:      "catalog_carl",
			Subreddit:   "smallbusiness",
			Permalink:   "/r/smallbusiness/comments/demo4/anyone_know_a_good/",
			CreatedUTC:  now - 6*3600,
			Score:       7,
			NumComments: 2,
		},
	}
	for _, post := range samplePosts {
		fake.AddPost(post)
	}
	fake.AddComment("demo3", reddit.Comment{
		ID:         "cdemo1",
		Author:     "helpful_stranger",
		Body:       "Zapier plus a cron job got me most of the way.",
		Permalink:  "/r/startups/comments/demo3/_/cdemo1/",
		CreatedUTC: now - 1800,
	})
	for i := 1; i <= 5; i++ {
		fake.AddHot("all", reddit.Post{
			ID:         fmt.Sprintf("hot%d", i),
			Title:      fmt.Sprintf("Site-wide trending post #%d", i),
			Subreddit:  "all",
			Permalink:  fmt.Sprintf("/r/all/comments/hot%d/trending/", i),
			CreatedUTC: now - float64(i)*600,
			Score:      1000 * i,
		})
	}

	service := scout.NewService(cfg, fake)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("\n🔍 Scanning %d subreddits for pain points...\n", len(cfg.Subreddits))
	entries, err := service.Scan(ctx, scout.ScanOptions{})
	if err != nil {
		fmt.Printf("❌ Scan failed: %v\n", err)
		os.Exit(1)
	}
	printScanResults(entries)
	if err := saveScanResults(entries); err != nil {
		fmt.Printf("\n⚠️  Warning: Could not save to file: %v\n", err)
	}

	fmt.Println("\n💬 Previewing a reply to the newest opportunity (dry run)...")
	reply, err := service.Reply(ctx, "demo3", "A scheduled export plus a diff alert covers this without writing code. Happy to share the setup I use.", true)
	if err != nil {
		fmt.Printf("❌ Reply preview failed: %v\n", err)
		os.Exit(1)
	}
	printJSON("Reply preview", reply)

	fmt.Println("\n🔥 Warming up the account...")
	warmup, err := service.Warmup(ctx)
	if err != nil {
		fmt.Printf("❌ Warmup failed: %v\n", err)
		os.Exit(1)
	}
	printJSON("Warmup", warmup)

	fmt.Println("\n📋 Checking account status...")
	status, err := service.Status(ctx)
	if err != nil {
		fmt.Printf("❌ Status check failed: %v\n", err)
		os.Exit(1)
	}
	printJSON("Account status", status)

	fmt.Println("\n✅ Offline scan demo completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Check the 'test_output' directory for the saved scan JSON")
	fmt.Println("   • Set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET in .env for live runs")
	fmt.Println("   • Run 'go run cmd/reddit-scout/main.go scan' against real subreddits")
}

func printScanResults(entries []models.ScanEntry) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 SCAN RESULTS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("📈 Opportunities found: %d\n", len(entries))

	for i, entry := range entries {
		if i >= 5 { // Show first 5 opportunities
			fmt.Printf("\n   ... and %d more\n", len(entries)-5)
			break
		}
		if entry.Err != nil {
			fmt.Printf("\n   %d. ⚠️  %s\n", i+1, entry.Err.Error)
			continue
		}
		post := entry.Post
		fmt.Printf("\n   %d. [r/%s] %s\n", i+1, post.Subreddit, post.Title)
		fmt.Printf("      🔗 URL: %s\n", post.URL)
		fmt.Printf("      🎯 Keywords: %s\n", strings.Join(post.KeywordsMatched, ", "))
		fmt.Printf("      ⭐ Score: %d | 💬 Comments: %d | 🕒 Age: %.1fh\n", post.Score, post.NumComments, post.AgeHours)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
}

func saveScanResults(entries []models.ScanEntry) error {
	dir := "test_output"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("scan_results_%s.json", timestamp))

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Printf("\n💾 Scan results saved to: %s\n", filename)
	return nil
}

func printJSON(label string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("❌ Could not render %s: %v\n", label, err)
		return
	}
	fmt.Printf("%s:\n%s\n", label, data)
}
