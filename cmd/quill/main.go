package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/MikeSquared-Agency/quill/internal/auth"
	"github.com/MikeSquared-Agency/quill/internal/config"
	"github.com/MikeSquared-Agency/quill/internal/gdocs"
	"github.com/MikeSquared-Agency/quill/internal/markdown"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.SourcePath, "file", cfg.SourcePath, "markdown file to publish")
	flag.StringVar(&cfg.Title, "title", cfg.Title, "title of the created document")
	flag.BoolVar(&cfg.BulletLists, "bullets", cfg.BulletLists, "format list items as bullet lists")
	flag.Parse()

	setupLogging(cfg.LogLevel)

	// The interactive authorization flow blocks on the user, so Ctrl-C
	// must cancel it cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scopes := []string{docs.DocumentsScope}
	mgr := auth.NewManager(cfg.CredentialsPath, cfg.TokenPath, scopes, cfg.CallbackPort, slog.Default())

	tok, err := mgr.Obtain(ctx)
	if errors.Is(err, auth.ErrMissingClientConfig) {
		fmt.Printf("ERROR: %s not found.\n", cfg.CredentialsPath)
		fmt.Println("Please download your OAuth 2.0 Client credentials from the Google Cloud Console")
		fmt.Printf("and save them as %q in this directory.\n", cfg.CredentialsPath)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("authentication failed", "error", err)
		os.Exit(1)
	}

	segments, err := markdown.ParseFile(cfg.SourcePath)
	if err != nil {
		slog.Error("failed to parse markdown", "path", cfg.SourcePath, "error", err)
		os.Exit(1)
	}

	client, err := gdocs.NewClient(ctx, slog.Default(),
		option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	if err != nil {
		slog.Error("failed to initialize docs client", "error", err)
		os.Exit(1)
	}

	pub := gdocs.NewPublisher(client, gdocs.Options{BulletLists: cfg.BulletLists}, slog.Default())

	id, err := pub.Publish(ctx, cfg.Title, segments)
	if err != nil {
		// A failed batch still leaves a created, title-only document
		// behind; the user needs its id.
		if id != "" {
			fmt.Printf("Document %s was created but its content could not be applied.\n", id)
		}
		slog.Error("publish failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Created document with title: %s\n", cfg.Title)
	fmt.Printf("Document ID: %s\n", id)
	fmt.Println("Content inserted and formatted.")
	fmt.Printf("View your document here: %s\n", gdocs.ViewURL(id))
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
