// internal/app/store/environments/environmentsstore.go
package environmentsstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/frontenv/internal/domain/environment"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the MongoDB collection holding published descriptors.
const CollectionName = "environments"

var (
	// ErrNotFound is returned when no descriptor is published under a name.
	ErrNotFound = errors.New("environment not found")
	// ErrInvalidName is returned for blank names.
	ErrInvalidName = errors.New("environment name is required")
)

// revisionSpace namespaces content-derived revisions.
var revisionSpace = uuid.MustParse("5b0c7a52-8a3e-4f0e-9f55-3f1d2d0c7e11")

// Record is a descriptor published under a name.
type Record struct {
	ID          primitive.ObjectID      `bson:"_id,omitempty" json:"-"`
	Name        string                  `bson:"name" json:"name"`
	Environment environment.Environment `bson:"environment" json:"environment"`
	Revision    string                  `bson:"revision" json:"revision"`
	PublishedAt time.Time               `bson:"published_at" json:"published_at"`
}

// Store is a registry of named descriptors. Implementations must be safe
// for concurrent use.
type Store interface {
	Publish(ctx context.Context, name string, env environment.Environment) (Record, error)
	Get(ctx context.Context, name string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}

// NormalizeName folds a descriptor name for storage and lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewRecord validates env and builds a Record for it. The revision is a
// UUIDv5 over the descriptor's JSON, so equal descriptors share a revision.
func NewRecord(name string, env environment.Environment) (Record, error) {
	name = NormalizeName(name)
	if name == "" {
		return Record{}, ErrInvalidName
	}
	if err := env.Validate(); err != nil {
		return Record{}, err
	}
	rev, err := Revision(env)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Name:        name,
		Environment: env,
		Revision:    rev,
		PublishedAt: time.Now().UTC(),
	}, nil
}

// Revision returns the content-derived revision of env.
func Revision(env environment.Environment) (string, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(revisionSpace, b).String(), nil
}
