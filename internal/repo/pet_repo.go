package repo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
)

// PetQuery carries the public search parameters. Empty or "All" categorical
// values do not narrow the result.
type PetQuery struct {
	Search  string
	Species string
	Gender  string
	Size    string
	Status  string
	Sort    string
}

// buildPetFilter always pins verified_by_admin; only moderated listings are
// publicly discoverable.
func buildPetFilter(q PetQuery) bson.M {
	filter := bson.M{"verified_by_admin": true}

	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"breed": re},
			bson.M{"description": re},
		}
	}
	for field, val := range map[string]string{
		"species": q.Species,
		"gender":  q.Gender,
		"size":    q.Size,
		"status":  q.Status,
	} {
		if val != "" && val != "All" {
			filter[field] = val
		}
	}
	return filter
}

func petSort(sort string) bson.D {
	switch sort {
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "popular":
		return bson.D{{Key: "views", Value: -1}}
	default: // newest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func (s *Store) CreatePet(ctx context.Context, p *domain.Pet) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.colPets.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindPetByID(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error) {
	var p domain.Pet
	err := s.colPets.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPetAndCountView increments the view counter and returns the updated
// document in one round trip.
func (s *Store) GetPetAndCountView(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error) {
	res := s.colPets.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var p domain.Pet
	if err := res.Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) SearchPets(ctx context.Context, q PetQuery) ([]domain.Pet, error) {
	cur, err := s.colPets.Find(ctx, buildPetFilter(q),
		options.Find().SetSort(petSort(q.Sort)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodePets(ctx, cur)
}

func (s *Store) FeaturedPets(ctx context.Context, limit int) ([]domain.Pet, error) {
	cur, err := s.colPets.Find(ctx,
		bson.M{"featured": true, "verified_by_admin": true, "status": domain.StatusAvailable},
		options.Find().
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodePets(ctx, cur)
}

func (s *Store) ListAllPets(ctx context.Context) ([]domain.Pet, error) {
	cur, err := s.colPets.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodePets(ctx, cur)
}

func (s *Store) FindPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.colPets.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodePets(ctx, cur)
}

// ReplacePet overwrites the whole document; last writer wins.
func (s *Store) ReplacePet(ctx context.Context, p *domain.Pet) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := s.colPets.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

func (s *Store) SetPetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.colPets.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) SetPetVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.colPets.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"verified_by_admin": true, "updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) SetPetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	_, err := s.colPets.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"featured": featured, "updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) DeletePet(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.colPets.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) CountPets(ctx context.Context) (int64, error) {
	return s.colPets.CountDocuments(ctx, bson.M{})
}

func (s *Store) CountUnverifiedPets(ctx context.Context) (int64, error) {
	return s.colPets.CountDocuments(ctx, bson.M{"verified_by_admin": false})
}

func decodePets(ctx context.Context, cur *mongo.Cursor) ([]domain.Pet, error) {
	var out []domain.Pet
	for cur.Next(ctx) {
		var p domain.Pet
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}
