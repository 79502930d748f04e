package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the core's contracts rely on:
// users.username, users.email, roles.name, and the (user_id, role) binding
// pair. Mongo index creation is idempotent, so this runs at every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	users := db.Collection(usersCollection)
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique(bson.D{{Key: "username", Value: 1}}),
		unique(bson.D{{Key: "email", Value: 1}}),
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	roles := db.Collection(rolesCollection)
	if _, err := roles.Indexes().CreateOne(ctx, unique(bson.D{{Key: "name", Value: 1}})); err != nil {
		return fmt.Errorf("roles indexes: %w", err)
	}

	bindings := db.Collection(bindingsCollection)
	if _, err := bindings.Indexes().CreateOne(ctx,
		unique(bson.D{{Key: "user_id", Value: 1}, {Key: "role", Value: 1}}),
	); err != nil {
		return fmt.Errorf("user_roles indexes: %w", err)
	}

	audit := db.Collection(auditCollection)
	if _, err := audit.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "actor", Value: 1}, {Key: "timestamp", Value: -1}},
	}); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}

	return nil
}
