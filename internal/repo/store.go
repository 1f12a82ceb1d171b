package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client       *mongo.Client
	DB           *mongo.Database
	colUsers     *mongo.Collection
	colPets      *mongo.Collection
	colAdoptions *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:       cli,
		DB:           db,
		colUsers:     db.Collection("users"),
		colPets:      db.Collection("pets"),
		colAdoptions: db.Collection("adoptions"),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colPets.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "verified_by_admin", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("verified_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("featured_status"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colAdoptions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "adopter", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("adopter_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "pet", Value: 1}, {Key: "adopter", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("pet_adopter_status"),
		},
	})
	return err
}

func IsDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce *mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}
