// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/olegiv/pagesmith/internal/model"
)

// DefaultMongoCollection is the collection holding page documents.
const DefaultMongoCollection = "pages"

// mongoPage is the stored form of a page. The document itself is kept as
// JSON so that typed section content round-trips exactly.
type mongoPage struct {
	ID           string    `bson:"_id"`
	OwnerID      string    `bson:"owner_id"`
	Title        string    `bson:"title"`
	Slug         string    `bson:"slug"`
	IsPublished  bool      `bson:"is_published"`
	SectionCount int       `bson:"section_count"`
	Document     string    `bson:"document"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d mongoPage) summary() model.PageSummary {
	return model.PageSummary{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		Title:        d.Title,
		Slug:         d.Slug,
		IsPublished:  d.IsPublished,
		SectionCount: d.SectionCount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoStore keeps pages in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// slug and owner indexes exist.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	coll := client.Database(database).Collection(DefaultMongoCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("creating mongo indexes: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save implements PageStore.
func (s *MongoStore) Save(ctx context.Context, page *model.Page) error {
	taken, err := s.SlugExists(ctx, page.Slug, page.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	doc, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}
	rec := mongoPage{
		ID:           page.ID,
		OwnerID:      page.OwnerID,
		Title:        page.Title,
		Slug:         page.Slug,
		IsPublished:  page.IsPublished,
		SectionCount: len(page.Sections),
		Document:     string(doc),
		CreatedAt:    page.CreatedAt.UTC(),
		UpdatedAt:    page.UpdatedAt.UTC(),
	}

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": page.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("upserting page: %w", err)
	}
	return nil
}

// Get implements PageStore.
func (s *MongoStore) Get(ctx context.Context, id string) (*model.Page, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetBySlug implements PageStore.
func (s *MongoStore) GetBySlug(ctx context.Context, slug string) (*model.Page, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*model.Page, error) {
	var rec mongoPage
	if err := s.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding page: %w", err)
	}

	var page model.Page
	if err := json.Unmarshal([]byte(rec.Document), &page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return &page, nil
}

// List implements PageStore.
func (s *MongoStore) List(ctx context.Context, ownerID string) ([]model.PageSummary, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"document": 0})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	out := []model.PageSummary{}
	for cur.Next(ctx) {
		var rec mongoPage
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding page summary: %w", err)
		}
		out = append(out, rec.summary())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return out, nil
}

// Delete implements PageStore.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugExists implements PageStore.
func (s *MongoStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"slug": slug, "_id": bson.M{"$ne": excludeID}})
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return n > 0, nil
}

// Ping verifies the server is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close implements PageStore.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ PageStore = (*MongoStore)(nil)
