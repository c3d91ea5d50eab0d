package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"geniemetrics/internal/account"
	"geniemetrics/internal/domain"
	"geniemetrics/internal/infra"
)

// userplan forces a plan on a live session. Sessions only exist in Redis
// when the API runs with REDIS_URL; in-memory sessions cannot be reached.
func main() {
	_ = godotenv.Load()

	var (
		sessionFlag string
		planFlag    string
	)
	flag.StringVar(&sessionFlag, "session", "", "session ID to update (the JWT subject)")
	flag.StringVar(&planFlag, "plan", "pro", "plan to assign (free, pro, business)")
	flag.Parse()

	sessionID := strings.TrimSpace(sessionFlag)
	if sessionID == "" {
		exitWithError(errors.New("-session is required"))
	}
	plan, err := domain.ParsePlan(planFlag)
	if err != nil {
		exitWithError(fmt.Errorf("%w: %q", err, planFlag))
	}

	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		exitWithError(errors.New("REDIS_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := infra.NewRedisClient(ctx, redisURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect redis: %w", err))
	}
	defer client.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userplan").Logger()
	svc := account.NewService(account.NewRedisStore(client), account.Options{Logger: logger})

	sess, err := svc.SetPlan(ctx, sessionID, plan)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			exitWithError(fmt.Errorf("session %s not found or expired", sessionID))
		}
		exitWithError(fmt.Errorf("failed to update plan: %w", err))
	}

	fmt.Printf("Session %s (%s) updated to plan %s\n", sess.ID, sess.Account.Email, sess.Account.Plan)
	fmt.Printf("searches_remaining=%d\n", sess.Account.SearchRemaining)
	fmt.Printf("ai_credits_remaining=%d\n", sess.Account.AICreditsRemaining)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
