//go:build ignore

// Seeds a development database with posts and comments.
//
//	FORUMUL_DATABASE_URL=postgres://... go run scripts/seed_posts.go
package main

import (
	"context"
	"log"
	"math/rand"
	"os"

	"Forumul/internal/core/posts"
	"Forumul/internal/db/postgres"
)

var titles = []string{
	"What are you reading this week?",
	"Show us your desk setup",
	"Best budget mechanical keyboard?",
	"Weekend hiking photos",
	"Anyone else learning Go this year?",
	"Favorite one-pot dinner recipes",
	"Tips for a first marathon",
	"Rate my sourdough",
}

var bodies = []string{
	"Curious what everyone thinks.",
	"Long time lurker, first post. Be nice!",
	"",
	"Drop your recommendations below.",
}

var replies = []string{
	"Great question!",
	"Following this thread.",
	"I had the same experience last year.",
	"This is the way.",
	"Thanks for sharing, very helpful.",
}

func main() {
	dsn := os.Getenv("FORUMUL_DATABASE_URL")
	if dsn == "" {
		log.Fatal("FORUMUL_DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, postgres.DriverPQ, dsn)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	for _, title := range titles {
		in := posts.NewPost{Title: title}
		if body := bodies[rand.Intn(len(bodies))]; body != "" {
			in.Content = &body
		}

		p, err := postRepo.Create(ctx, in)
		if err != nil {
			log.Fatalf("Failed to create post %q: %v", title, err)
		}
		if err := postRepo.SetUpvotes(ctx, p.ID, rand.Intn(50)); err != nil {
			log.Fatalf("Failed to set upvotes on post %d: %v", p.ID, err)
		}

		for i := 0; i < rand.Intn(6); i++ {
			if _, err := commentRepo.Create(ctx, p.ID, replies[rand.Intn(len(replies))]); err != nil {
				log.Fatalf("Failed to comment on post %d: %v", p.ID, err)
			}
		}
		log.Printf("[SEED] post %d: %s", p.ID, title)
	}
}
