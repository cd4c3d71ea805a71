// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	environmentsstore "github.com/dalemusser/frontenv/internal/app/store/environments"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// The Mongo fields are nil when descriptors are kept in memory.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Environments  environmentsstore.Store
}
