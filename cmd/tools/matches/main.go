package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/soundbridge/opportunity-engine/internal/db"
	"github.com/soundbridge/opportunity-engine/internal/match"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: matches <user-id>")
	}
	userID := os.Args[1]

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	engine := match.NewEngine(store, store, match.StaticRoles)

	matches, err := engine.FindMatchesForUser(ctx, userID)
	if err != nil {
		log.Fatal(err)
	}
	if len(matches) == 0 {
		log.Printf("No matches for user %s (missing profile or empty catalog)", userID)
		return
	}
	if len(matches) > 20 {
		matches = matches[:20]
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Score", "Priority", "Title", "Source", "Deadline", "Reasons"})

	for _, m := range matches {
		deadline := "rolling"
		if !m.Deadline.IsZero() {
			deadline = m.Deadline.Format(time.DateOnly)
		}
		t.AppendRow(table.Row{
			m.RelevanceScore,
			m.PriorityLevel,
			m.Title,
			m.Source,
			deadline,
			strings.Join(m.MatchingReasons, "; "),
		})
	}
	t.Render()
}
