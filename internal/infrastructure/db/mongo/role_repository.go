package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	rolesCollection    = "roles"
	bindingsCollection = "user_roles"
)

// RoleRepository implements ports.RoleRepository using MongoDB. The unique
// (user_id, role) index makes AddBinding atomic: a duplicate-key error from
// a concurrent insert is reported as success, since the end state is the
// single binding either way.
type RoleRepository struct {
	roles    *mongo.Collection
	bindings *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		roles:    db.Collection(rolesCollection),
		bindings: db.Collection(bindingsCollection),
	}
}

func (r *RoleRepository) RoleExists(ctx context.Context, name string) (bool, error) {
	n, err := r.roles.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("role exists: %w", err)
	}
	return n > 0, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, name string) error {
	_, err := r.roles.InsertOne(ctx, bson.M{"name": name, "created_at": time.Now().UTC()})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent creation; the role exists, which is all we need.
			return nil
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

func (r *RoleRepository) HasBinding(ctx context.Context, userID, role string) (bool, error) {
	n, err := r.bindings.CountDocuments(ctx, bson.M{"user_id": userID, "role": role})
	if err != nil {
		return false, fmt.Errorf("has binding: %w", err)
	}
	return n > 0, nil
}

func (r *RoleRepository) AddBinding(ctx context.Context, userID, role string) error {
	doc := bson.M{
		"user_id":     userID,
		"role":        role,
		"assigned_at": time.Now().UTC(),
	}
	if _, err := r.bindings.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("add binding: %w", err)
	}
	return nil
}

func (r *RoleRepository) RemoveBinding(ctx context.Context, userID, role string) error {
	if _, err := r.bindings.DeleteOne(ctx, bson.M{"user_id": userID, "role": role}); err != nil {
		return fmt.Errorf("remove binding: %w", err)
	}
	return nil
}

// ListRoles returns the user's role names in assignment order.
func (r *RoleRepository) ListRoles(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.bindings.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Role string `bson:"role"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode binding: %w", err)
		}
		names = append(names, doc.Role)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return names, nil
}
