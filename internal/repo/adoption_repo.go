package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
)

func (s *Store) CreateAdoption(ctx context.Context, a *domain.Adoption) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Documents == nil {
		a.Documents = []domain.AdoptionDocument{}
	}
	res, err := s.colAdoptions.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (s *Store) FindAdoptionByID(ctx context.Context, id primitive.ObjectID) (*domain.Adoption, error) {
	var a domain.Adoption
	err := s.colAdoptions.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// HasActiveAdoption reports whether the adopter already holds a Pending or
// Approved application for the pet.
func (s *Store) HasActiveAdoption(ctx context.Context, petID, adopterID primitive.ObjectID) (bool, error) {
	n, err := s.colAdoptions.CountDocuments(ctx, bson.M{
		"pet":     petID,
		"adopter": adopterID,
		"status":  bson.M{"$in": bson.A{domain.AdoptionPending, domain.AdoptionApproved}},
	})
	return n > 0, err
}

func (s *Store) ListAdoptionsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]domain.Adoption, error) {
	cur, err := s.colAdoptions.Find(ctx, bson.M{"adopter": adopterID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAdoptions(ctx, cur)
}

func (s *Store) ListAllAdoptions(ctx context.Context) ([]domain.Adoption, error) {
	cur, err := s.colAdoptions.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAdoptions(ctx, cur)
}

func (s *Store) RecentAdoptions(ctx context.Context, limit int) ([]domain.Adoption, error) {
	cur, err := s.colAdoptions.Find(ctx, bson.M{},
		options.Find().
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAdoptions(ctx, cur)
}

func (s *Store) ReplaceAdoption(ctx context.Context, a *domain.Adoption) error {
	a.UpdatedAt = time.Now().UTC()
	_, err := s.colAdoptions.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return err
}

func (s *Store) DeleteAdoption(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.colAdoptions.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// CountAdoptions counts all applications, or only those in status when it is
// non-empty.
func (s *Store) CountAdoptions(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.colAdoptions.CountDocuments(ctx, filter)
}

func decodeAdoptions(ctx context.Context, cur *mongo.Cursor) ([]domain.Adoption, error) {
	var out []domain.Adoption
	for cur.Next(ctx) {
		var a domain.Adoption
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}
