package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
)

// DefaultListLimit caps [Store.List] when no limit is given.
const DefaultListLimit = 50

// Chart is a saved chart.
type Chart struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Title       string          `json:"title,omitempty" bson:"title,omitempty"`
	DatasetHash string          `json:"dataset_hash" bson:"dataset_hash"`
	Dataset     dataset.Dataset `json:"dataset" bson:"dataset"`
	Style       string          `json:"style,omitempty" bson:"style,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}

// Summary is the list form of a [Chart], without the dataset.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Title       string    `json:"title,omitempty" bson:"title,omitempty"`
	DatasetHash string    `json:"dataset_hash" bson:"dataset_hash"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Summary returns the list form of c.
func (c Chart) Summary() Summary {
	return Summary{ID: c.ID, Name: c.Name, Title: c.Title, DatasetHash: c.DatasetHash, CreatedAt: c.CreatedAt}
}

// Store persists charts.
type Store interface {
	// Save assigns an ID and creation time when unset and stores c.
	Save(ctx context.Context, c *Chart) error
	// Get returns the chart with id or an ErrCodeChartNotFound error.
	Get(ctx context.Context, id string) (*Chart, error)
	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)
	// Delete removes the chart with id or returns ErrCodeChartNotFound.
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// NewChart wraps d for saving.
func NewChart(d dataset.Dataset, style string) (*Chart, error) {
	hash, err := d.Hash()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	return &Chart{
		Name:        d.Name,
		Title:       d.Title,
		DatasetHash: hash,
		Dataset:     d,
		Style:       style,
	}, nil
}

func prepare(c *Chart, now time.Time) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
