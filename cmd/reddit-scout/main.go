package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fishbig/reddit-scout/internal/config"
	"github.com/fishbig/reddit-scout/internal/models"
	"github.com/fishbig/reddit-scout/internal/reddit"
	"github.com/fishbig/reddit-scout/internal/scout"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Only usage problems exit nonzero. Everything else travels
		// inside the JSON document with a zero exit.
		emit(&models.ErrorResult{Error: err.Error()})
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reddit-scout",
		Short:         "Find and answer pain-point posts on Reddit",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("Unknown command: %s", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("Usage: reddit-scout <scan|reply|warmup|status>")
		},
	}

	root.AddCommand(newScanCmd(), newReplyCmd(), newWarmupCmd(), newStatusCmd())
	return root
}

func newScanCmd() *cobra.Command {
	var (
		subs     []string
		keywords []string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan subreddits for posts matching pain keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *scout.Service) (interface{}, error) {
				return svc.Scan(ctx, scout.ScanOptions{
					Subreddits: subs,
					Keywords:   keywords,
					Limit:      limit,
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&subs, "subs", nil, "subreddits to scan instead of the defaults")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "keywords to match instead of the defaults")
	cmd.Flags().IntVar(&limit, "limit", 0, "newest posts to inspect per subreddit")
	return cmd
}

func newReplyCmd() *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "reply <post_id> <text>",
		Short: "Reply to a post, as a dry run unless --live is set",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("Usage: reply <post_id> <text> [--live]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *scout.Service) (interface{}, error) {
				return svc.Reply(ctx, args[0], args[1], !live)
			})
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "actually post the comment instead of previewing it")
	return cmd
}

func newWarmupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warmup",
		Short: "Browse hot posts and report karma-building progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *scout.Service) (interface{}, error) {
				return svc.Warmup(ctx)
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the session account's karma and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, svc *scout.Service) (interface{}, error) {
				return svc.Status(ctx)
			})
		},
	}
}

// run builds a service from the environment, executes op, and prints
// the outcome. Operational failures become {"error": ...} documents
// with a zero exit, so callers can treat stdout as the whole story.
func run(op func(ctx context.Context, svc *scout.Service) (interface{}, error)) error {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		emit(&models.ErrorResult{Error: err.Error()})
		return nil
	}
	setupLogging(cfg)

	var api reddit.API
	if cfg.Configured() {
		api = reddit.NewClient(reddit.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Username:     cfg.Username,
			Password:     cfg.Password,
		}, cfg.UserAgent(), cfg.RequestTimeout)
	}

	result, err := op(context.Background(), scout.NewService(cfg, api))
	if err != nil {
		emit(&models.ErrorResult{Error: err.Error()})
		return nil
	}
	emit(result)
	return nil
}

// setupLogging maps the env knobs onto the global logger. Logs go to
// stderr, keeping stdout a single JSON document; a plain run stays
// quiet unless something is actually wrong.
func setupLogging(cfg *config.Config) {
	logrus.SetLevel(logrus.WarnLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// emit prints one compact JSON document followed by a newline.
func emit(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(&models.ErrorResult{Error: err.Error()})
	}
	fmt.Println(string(data))
}
