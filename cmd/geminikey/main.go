package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"geniemetrics/internal/infra"
	"geniemetrics/internal/infra/credentials"
	"geniemetrics/internal/sqlinline"
)

func main() {
	_ = godotenv.Load()

	var keyFlag string
	var showFlag, clearFlag bool
	flag.StringVar(&keyFlag, "key", "", "Gemini API key to store (falls back to GEMINI_API_KEY)")
	flag.BoolVar(&showFlag, "show", false, "print whether a key is stored instead of writing one")
	flag.BoolVar(&clearFlag, "clear", false, "remove the stored key")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, dbURL, 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	if _, err := runner.Exec(ctx, sqlinline.QEnsureUsageSchema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare schema: %v\n", err)
		os.Exit(1)
	}
	store := credentials.NewStore(runner)

	if showFlag {
		key, err := store.GeminiAPIKey(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read gemini api key: %v\n", err)
			os.Exit(1)
		}
		if key == "" {
			fmt.Println("no Gemini API key stored")
			return
		}
		fmt.Printf("Gemini API key stored (ends in %s)\n", tail(key, 4))
		return
	}

	if clearFlag {
		if err := store.ClearGeminiAPIKey(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to clear gemini api key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Gemini API key removed")
		return
	}

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Gemini API key is required via -key or GEMINI_API_KEY")
		os.Exit(1)
	}
	if err := store.SetGeminiAPIKey(ctx, key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist gemini api key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Gemini API key stored successfully")
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
