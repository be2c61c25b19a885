// Package store persists self-play training examples in BadgerDB.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"hexzero/game"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const examplePrefix = "example/"

// Example is one training target: a canonical position (White to move), the
// search policy on it and the final result for the player to move.
type Example struct {
	GameID   uuid.UUID   `json:"game_id"`
	Step     int         `json:"step"`
	Symmetry int         `json:"symmetry"`
	Size     int         `json:"size"`
	Board    []game.Cell `json:"board"`
	Policy   []float64   `json:"policy"`
	Value    float64     `json:"value"`
}

// NewExamples expands a canonical position and its policy into one example
// per board symmetry.
func NewExamples(h *game.Hex, gameID uuid.UUID, step int, canonical *game.Board, policy []float64, value float64) ([]Example, error) {
	symmetries, err := h.Symmetries(canonical, policy)
	if err != nil {
		return nil, err
	}
	examples := make([]Example, len(symmetries))
	for i, s := range symmetries {
		examples[i] = Example{
			GameID:   gameID,
			Step:     step,
			Symmetry: i,
			Size:     s.Board.Size(),
			Board:    s.Board.Cells(),
			Policy:   s.Policy,
			Value:    value,
		}
	}
	return examples, nil
}

// Position decodes the stored board.
func (e Example) Position() (*game.Board, error) {
	return game.NewBoardFromCells(e.Size, e.Board)
}

// Key orders examples by game, then move, then symmetry.
func (e Example) Key() []byte {
	return []byte(fmt.Sprintf("%s%s/%04d/%02d", examplePrefix, e.GameID, e.Step, e.Symmetry))
}

// Config holds configuration for the example store.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM, for tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// Store is safe for concurrent use.
type Store struct {
	db *badger.DB
}

func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db}, nil
}

func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes examples in a single transaction.
func (s *Store) Put(ctx context.Context, examples []Example) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, e := range examples {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("encode example: %w", err)
			}
			if err := txn.Set(e.Key(), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write examples: %w", err)
	}
	return nil
}

// Scan calls fn for every stored example in key order. Returning an error
// from fn stops the scan.
func (s *Store) Scan(ctx context.Context, fn func(Example) error) error {
	return s.scan(ctx, []byte(examplePrefix), fn)
}

// Game returns the examples recorded for one game.
func (s *Store) Game(ctx context.Context, id uuid.UUID) ([]Example, error) {
	var examples []Example
	prefix := []byte(examplePrefix + id.String() + "/")
	err := s.scan(ctx, prefix, func(e Example) error {
		examples = append(examples, e)
		return nil
	})
	return examples, err
}

// Count returns the number of stored examples.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	prefix := []byte(examplePrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *Store) scan(ctx context.Context, prefix []byte, fn func(Example) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Example
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("decode example %s: %w", it.Item().Key(), err)
			}
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	})
}
