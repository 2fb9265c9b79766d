// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"log"

	"agora/internal/models"
	"agora/internal/search"

	"gorm.io/gorm"
)

type starterThread struct {
	Category string
	Title    string
	Author   string
	Content  string
	Tags     []string
}

type starterReply struct {
	Thread  int // index into starterThreads
	Author  string
	Content string
}

type starterReaction struct {
	Post    int // 1-based index into posts in insertion order
	Kind    models.ReactionKind
	Reactor string
}

var starterCategories = []models.Category{
	{Name: "General Discussion", Description: "Talk about anything and everything"},
	{Name: "Technology", Description: "Programming, gadgets, and tech news"},
	{Name: "Gaming", Description: "Video games, board games, and esports"},
	{Name: "Science", Description: "Scientific discoveries and discussions"},
	{Name: "Creative Corner", Description: "Share your art, writing, and music"},
}

var starterThreads = []starterThread{
	{"General Discussion", "Welcome to the forum!", "admin",
		"Welcome everyone! Feel free to introduce yourselves and get to know the community.",
		[]string{"welcome", "introduction"}},
	{"General Discussion", "Forum rules and guidelines", "admin",
		"Please be respectful to all members. No spam, no harassment. Keep discussions civil and constructive.",
		[]string{"rules", "meta"}},
	{"Technology", "Best programming languages in 2026", "techie42",
		"What are your favorite programming languages this year? I've been really enjoying Rust and Python.",
		[]string{"programming", "languages"}},
	{"Technology", "Building APIs with Fiber", "gopher_dev",
		"Fiber has been great for building REST APIs. The middleware ecosystem is a game changer!",
		[]string{"go", "fiber", "api"}},
	{"Gaming", "What are you playing right now?", "gamer_one",
		"Just started Elden Ring 2. The open world is even more incredible than the first. What about you all?",
		[]string{"games", "current"}},
	{"Science", "James Webb latest discoveries", "stargazer",
		"The latest images from JWST are absolutely mind-blowing. Anyone else following the recent exoplanet discoveries?",
		[]string{"space", "astronomy"}},
	{"Creative Corner", "Share your latest project", "creator",
		"I just finished a watercolor painting of a sunset. Would love to see what everyone else has been working on!",
		[]string{"projects", "sharing"}},
}

var starterReplies = []starterReply{
	{0, "user123", "Hi everyone! Glad to be here. Looking forward to great discussions!"},
	{0, "newbie_dev", "Hello! I'm new to programming and excited to learn from you all."},
	{2, "rust_fan", "Rust all the way! The borrow checker saved me from so many bugs."},
	{2, "js_lover", "TypeScript has been incredible. The type system keeps getting better."},
	{3, "backend_dev", "The dependency injection story in Go services is so clean with small interfaces."},
	{4, "retro_gamer", "I'm replaying Zelda TOTK. The ultrahand builds are addictive!"},
	{5, "space_nerd", "The exoplanet data has been fascinating. Some candidates for habitable zones!"},
}

var starterReactions = []starterReaction{
	{1, models.ReactionUpvote, "user123"},
	{1, models.ReactionUpvote, "newbie_dev"},
	{2, models.ReactionUpvote, "user123"},
	{3, models.ReactionUpvote, "rust_fan"},
	{3, models.ReactionUpvote, "js_lover"},
	{4, models.ReactionUpvote, "backend_dev"},
	{5, models.ReactionDownvote, "retro_gamer"},
	{6, models.ReactionUpvote, "space_nerd"},
	{6, models.ReactionUpvote, "techie42"},
}

// Run inserts the starter content if the database is empty. Threads go
// through the same write path as the API: thread, first post, tags and both
// search index rows commit in one transaction.
func Run(db *gorm.DB, syncer *search.Syncer) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := map[string]uint{}
		for _, c := range starterCategories {
			category := c
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categoryIDs[category.Name] = category.ID
		}

		var postIDs []uint
		var threadIDs []uint
		for _, t := range starterThreads {
			thread := models.Thread{
				CategoryID: categoryIDs[t.Category],
				Title:      t.Title,
				AuthorName: t.Author,
			}
			if err := tx.Create(&thread).Error; err != nil {
				return err
			}
			threadIDs = append(threadIDs, thread.ID)

			post := models.Post{
				ThreadID:   thread.ID,
				AuthorName: t.Author,
				Content:    t.Content,
			}
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
			postIDs = append(postIDs, post.ID)

			for _, tag := range models.NormalizeTags(t.Tags) {
				link := models.ThreadTag{ThreadID: thread.ID, TagName: tag}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}

			if err := syncer.IndexThread(tx, thread.ID, thread.Title, post.Content); err != nil {
				return err
			}
			if err := syncer.IndexPost(tx, post.ID, post.Content); err != nil {
				return err
			}
		}

		for _, reply := range starterReplies {
			post := models.Post{
				ThreadID:   threadIDs[reply.Thread],
				AuthorName: reply.Author,
				Content:    reply.Content,
			}
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
			postIDs = append(postIDs, post.ID)
			if err := syncer.IndexPost(tx, post.ID, post.Content); err != nil {
				return err
			}
		}

		for _, r := range starterReactions {
			reaction := models.Reaction{
				PostID:      postIDs[r.Post-1],
				Kind:        r.Kind,
				ReactorName: r.Reactor,
			}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
		}

		log.Printf("Seeded %d categories, %d threads, %d posts, %d reactions",
			len(starterCategories), len(starterThreads), len(postIDs), len(starterReactions))
		return nil
	})
}
