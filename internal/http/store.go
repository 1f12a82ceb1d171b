package http

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/oauth"
	"github.com/sneha-1019/PawfectHomes/internal/repo"
)

// Store is everything the handlers need from persistence. *repo.Store is the
// Mongo implementation; tests plug in an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error

	// users
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetUserOTP(ctx context.Context, id primitive.ObjectID, code string, expiry time.Time) error
	MarkUserVerified(ctx context.Context, id primitive.ObjectID, admin bool) error
	LinkGoogle(ctx context.Context, id primitive.ObjectID, googleID string, admin bool) error
	ToggleSavedPet(ctx context.Context, userID, petID primitive.ObjectID) (bool, error)
	AddUserUpload(ctx context.Context, userID, petID primitive.ObjectID) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// pets
	CreatePet(ctx context.Context, p *domain.Pet) error
	FindPetByID(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error)
	GetPetAndCountView(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error)
	SearchPets(ctx context.Context, q repo.PetQuery) ([]domain.Pet, error)
	FeaturedPets(ctx context.Context, limit int) ([]domain.Pet, error)
	ListAllPets(ctx context.Context) ([]domain.Pet, error)
	FindPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Pet, error)
	ReplacePet(ctx context.Context, p *domain.Pet) error
	SetPetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SetPetVerified(ctx context.Context, id primitive.ObjectID) error
	SetPetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error
	DeletePet(ctx context.Context, id primitive.ObjectID) error
	CountPets(ctx context.Context) (int64, error)
	CountUnverifiedPets(ctx context.Context) (int64, error)

	// adoptions
	CreateAdoption(ctx context.Context, a *domain.Adoption) error
	FindAdoptionByID(ctx context.Context, id primitive.ObjectID) (*domain.Adoption, error)
	HasActiveAdoption(ctx context.Context, petID, adopterID primitive.ObjectID) (bool, error)
	ListAdoptionsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]domain.Adoption, error)
	ListAllAdoptions(ctx context.Context) ([]domain.Adoption, error)
	RecentAdoptions(ctx context.Context, limit int) ([]domain.Adoption, error)
	ReplaceAdoption(ctx context.Context, a *domain.Adoption) error
	DeleteAdoption(ctx context.Context, id primitive.ObjectID) error
	CountAdoptions(ctx context.Context, status string) (int64, error)
}

var _ Store = (*repo.Store)(nil)

// Uploader pushes an image to the object-storage collaborator and returns
// the hosted URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// GoogleExchanger swaps a third-party authorization code for a verified
// profile.
type GoogleExchanger interface {
	ExchangeAndVerify(ctx context.Context, code string) (*oauth.GoogleUser, error)
}
