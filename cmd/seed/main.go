// Command main runs the database seeder for Agora.
package main

import (
	"flag"
	"log"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/search"
	"agora/internal/seed"
)

func main() {
	numThreads := flag.Int("threads", 50, "Number of random threads to create")
	replies := flag.Int("replies", 5, "Replies per generated thread")
	reactions := flag.Int("reactions", 3, "Reactions per generated reply")
	starterOnly := flag.Bool("starter-only", false, "Insert only the fixed starter content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	syncer := search.NewSyncer()

	if err := seed.Run(db, syncer); err != nil {
		log.Fatalf("Failed to seed starter content: %v", err)
	}
	if *starterOnly {
		return
	}

	factory := seed.NewFactory(db, syncer, seed.Options{
		NumThreads:        *numThreads,
		RepliesPerThread:  *replies,
		ReactionsPerReply: *reactions,
	})
	if err := factory.Generate(); err != nil {
		log.Fatalf("Failed to generate demo content: %v", err)
	}
}
