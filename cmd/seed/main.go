// Command seed fills the configured store with generated books.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/store"

	"go.uber.org/zap"
)

var (
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors = []string{"Ada Byron", "Chinua Achebe", "Italo Calvino", "Ursula Le Guin", "Haruki Murakami", "Toni Morrison", "Jorge Luis Borges", "Octavia Butler"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	count := flag.Int("count", 100, "Number of books to create")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.StoreURI, cfg.StoreTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	logger.Info("seeding books", zap.Int("count", *count), zap.String("store", store.Redact(cfg.StoreURI)))

	created, err := seed(ctx, book.NewService(st), rand.New(rand.NewSource(1)), *count)
	if err != nil {
		return fmt.Errorf("seed stopped after %d books: %w", created, err)
	}

	total, err := st.List(ctx)
	if err != nil {
		return err
	}
	logger.Info("seed complete", zap.Int("created", created), zap.Int("total", len(total)))
	return nil
}

func seed(ctx context.Context, svc *book.Service, rng *rand.Rand, count int) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := svc.Create(ctx, randomBook(rng, i)); err != nil {
			return i, err
		}
	}
	return count, nil
}

func randomBook(rng *rand.Rand, i int) book.CreateInput {
	year := 1950 + rng.Intn(75)
	genre := genres[rng.Intn(len(genres))]
	return book.CreateInput{
		Title:  fmt.Sprintf("%s of %s %d", words[rng.Intn(len(words))], words[rng.Intn(len(words))], i+1),
		Author: authors[rng.Intn(len(authors))],
		Year:   &year,
		Genre:  &genre,
	}
}
