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

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()
	if u.SavedPets == nil {
		u.SavedPets = []primitive.ObjectID{}
	}
	if u.MyUploads == nil {
		u.MyUploads = []primitive.ObjectID{}
	}
	res, err := s.colUsers.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUserOTP(ctx context.Context, id primitive.ObjectID, code string, expiry time.Time) error {
	_, err := s.colUsers.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"otp": code, "otp_expiry": expiry},
	})
	return err
}

// MarkUserVerified flips the verification flag and clears the OTP pair in a
// single document update, so a used code can never be replayed.
func (s *Store) MarkUserVerified(ctx context.Context, id primitive.ObjectID, admin bool) error {
	set := bson.M{"is_email_verified": true}
	if admin {
		set["is_admin"] = true
	}
	_, err := s.colUsers.UpdateByID(ctx, id, bson.M{
		"$set":   set,
		"$unset": bson.M{"otp": "", "otp_expiry": ""},
	})
	return err
}

// LinkGoogle backfills the external identity on an existing account.
func (s *Store) LinkGoogle(ctx context.Context, id primitive.ObjectID, googleID string, admin bool) error {
	set := bson.M{"is_email_verified": true}
	if googleID != "" {
		set["google_id"] = googleID
	}
	if admin {
		set["is_admin"] = true
	}
	_, err := s.colUsers.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ToggleSavedPet flips bookmark membership and reports the resulting state.
func (s *Store) ToggleSavedPet(ctx context.Context, userID, petID primitive.ObjectID) (bool, error) {
	u, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, mongo.ErrNoDocuments
	}
	saved := false
	for _, id := range u.SavedPets {
		if id == petID {
			saved = true
			break
		}
	}
	var update bson.M
	if saved {
		update = bson.M{"$pull": bson.M{"saved_pets": petID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"saved_pets": petID}}
	}
	if _, err := s.colUsers.UpdateByID(ctx, userID, update); err != nil {
		return false, err
	}
	return !saved, nil
}

func (s *Store) AddUserUpload(ctx context.Context, userID, petID primitive.ObjectID) error {
	_, err := s.colUsers.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"my_uploads": petID}})
	return err
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.colUsers.CountDocuments(ctx, bson.M{})
}
