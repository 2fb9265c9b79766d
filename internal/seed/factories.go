package seed

import (
	"log"
	"math/rand"
	"time"

	"agora/internal/models"
	"agora/internal/search"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls bulk generation of demo content.
type Options struct {
	NumThreads        int
	RepliesPerThread  int
	ReactionsPerReply int
}

// Factory builds random forum content for load testing and demos. It writes
// through the same transactional path as the API so the search index stays
// consistent with the generated rows.
type Factory struct {
	db     *gorm.DB
	syncer *search.Syncer
	opts   Options
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, syncer *search.Syncer, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, syncer: syncer, opts: opts}
}

var tagPool = []string{
	"help", "discussion", "show-and-tell", "question", "announcement",
	"guide", "review", "news", "offtopic", "beginners",
}

func fakeAuthor() string {
	return gofakeit.Username()
}

func fakeTags() []string {
	n := rand.Intn(3) + 1
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, tagPool[rand.Intn(len(tagPool))])
	}
	return models.NormalizeTags(tags)
}

// Generate creates random threads with replies and reactions across the
// existing categories. The database must already contain categories.
func (f *Factory) Generate() error {
	var categories []models.Category
	if err := f.db.Find(&categories).Error; err != nil {
		return err
	}
	if len(categories) == 0 {
		return gorm.ErrRecordNotFound
	}

	for i := 0; i < f.opts.NumThreads; i++ {
		if err := f.generateThread(categories[rand.Intn(len(categories))].ID); err != nil {
			return err
		}
	}

	log.Printf("Generated %d random threads", f.opts.NumThreads)
	return nil
}

func (f *Factory) generateThread(categoryID uint) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		author := fakeAuthor()
		thread := models.Thread{
			CategoryID: categoryID,
			Title:      gofakeit.Sentence(6),
			AuthorName: author,
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}

		first := models.Post{
			ThreadID:   thread.ID,
			AuthorName: author,
			Content:    gofakeit.Paragraph(2, 4, 10, " "),
		}
		if err := tx.Create(&first).Error; err != nil {
			return err
		}

		for _, tag := range fakeTags() {
			link := models.ThreadTag{ThreadID: thread.ID, TagName: tag}
			if err := tx.Where(&link).FirstOrCreate(&link).Error; err != nil {
				return err
			}
		}

		if err := f.syncer.IndexThread(tx, thread.ID, thread.Title, first.Content); err != nil {
			return err
		}
		if err := f.syncer.IndexPost(tx, first.ID, first.Content); err != nil {
			return err
		}

		for r := 0; r < f.opts.RepliesPerThread; r++ {
			reply := models.Post{
				ThreadID:   thread.ID,
				AuthorName: fakeAuthor(),
				Content:    gofakeit.Paragraph(1, 3, 12, " "),
			}
			if err := tx.Create(&reply).Error; err != nil {
				return err
			}
			if err := f.syncer.IndexPost(tx, reply.ID, reply.Content); err != nil {
				return err
			}

			for v := 0; v < f.opts.ReactionsPerReply; v++ {
				kind := models.ReactionUpvote
				if rand.Intn(4) == 0 {
					kind = models.ReactionDownvote
				}
				reaction := models.Reaction{
					PostID:      reply.ID,
					Kind:        kind,
					ReactorName: fakeAuthor(),
				}
				// Random reactor names can collide with the uniqueness
				// rule; skip duplicates instead of aborting the batch.
				if err := tx.Create(&reaction).Error; err != nil {
					continue
				}
			}
		}
		return nil
	})
}
