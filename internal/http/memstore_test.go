package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/repo"
)

// memStore is an in-memory stand-in for *repo.Store, mirroring its
// not-found-is-nil convention and duplicate-key errors.
type memStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]domain.User
	pets      map[primitive.ObjectID]domain.Pet
	adoptions map[primitive.ObjectID]domain.Adoption
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[primitive.ObjectID]domain.User),
		pets:      make(map[primitive.ObjectID]domain.Pet),
		adoptions: make(map[primitive.ObjectID]domain.Adoption),
	}
}

var errDup = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}

// skipField mirrors the query semantics: empty or "All" does not narrow.
func skipField(filter, val string) bool {
	return filter != "" && filter != "All" && filter != val
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

// users

func (m *memStore) CreateUser(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return errDup
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if u.SavedPets == nil {
		u.SavedPets = []primitive.ObjectID{}
	}
	if u.MyUploads == nil {
		u.MyUploads = []primitive.ObjectID{}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) SetUserOTP(ctx context.Context, id primitive.ObjectID, code string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.OTP = code
	u.OTPExpiry = expiry
	m.users[id] = u
	return nil
}

func (m *memStore) MarkUserVerified(ctx context.Context, id primitive.ObjectID, admin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.IsEmailVerified = true
	u.OTP = ""
	u.OTPExpiry = time.Time{}
	if admin {
		u.IsAdmin = true
	}
	m.users[id] = u
	return nil
}

func (m *memStore) LinkGoogle(ctx context.Context, id primitive.ObjectID, googleID string, admin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.IsEmailVerified = true
	if googleID != "" {
		u.GoogleID = googleID
	}
	if admin {
		u.IsAdmin = true
	}
	m.users[id] = u
	return nil
}

func (m *memStore) ToggleSavedPet(ctx context.Context, userID, petID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	for i, id := range u.SavedPets {
		if id == petID {
			u.SavedPets = append(u.SavedPets[:i], u.SavedPets[i+1:]...)
			m.users[userID] = u
			return false, nil
		}
	}
	u.SavedPets = append(u.SavedPets, petID)
	m.users[userID] = u
	return true, nil
}

func (m *memStore) AddUserUpload(ctx context.Context, userID, petID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.MyUploads = append(u.MyUploads, petID)
	m.users[userID] = u
	return nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// pets

func (m *memStore) CreatePet(ctx context.Context, p *domain.Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.pets[p.ID] = *p
	return nil
}

func (m *memStore) FindPetByID(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.pets[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetPetAndCountView(ctx context.Context, id primitive.ObjectID) (*domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pets[id]
	if !ok {
		return nil, nil
	}
	p.Views++
	m.pets[id] = p
	cp := p
	return &cp, nil
}

func (m *memStore) SearchPets(ctx context.Context, q repo.PetQuery) ([]domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Pet
	for _, p := range m.pets {
		if !p.VerifiedByAdmin {
			continue
		}
		if q.Search != "" {
			s := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(p.Name), s) &&
				!strings.Contains(strings.ToLower(p.Breed), s) &&
				!strings.Contains(strings.ToLower(p.Description), s) {
				continue
			}
		}
		if skipField(q.Species, p.Species) || skipField(q.Gender, p.Gender) ||
			skipField(q.Size, p.Size) || skipField(q.Status, p.Status) {
			continue
		}
		out = append(out, p)
	}
	switch q.Sort {
	case "oldest":
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case "name":
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "popular":
		sort.Slice(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

func (m *memStore) FeaturedPets(ctx context.Context, limit int) ([]domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Pet
	for _, p := range m.pets {
		if p.Featured && p.VerifiedByAdmin && p.Status == domain.StatusAvailable {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ListAllPets(ctx context.Context) ([]domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Pet, 0, len(m.pets))
	for _, p := range m.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FindPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Pet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Pet
	for _, id := range ids {
		if p, ok := m.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ReplacePet(ctx context.Context, p *domain.Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	m.pets[p.ID] = *p
	return nil
}

func (m *memStore) SetPetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pets[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Status = status
	m.pets[id] = p
	return nil
}

func (m *memStore) SetPetVerified(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pets[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.VerifiedByAdmin = true
	m.pets[id] = p
	return nil
}

func (m *memStore) SetPetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pets[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Featured = featured
	m.pets[id] = p
	return nil
}

func (m *memStore) DeletePet(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pets, id)
	return nil
}

func (m *memStore) CountPets(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pets)), nil
}

func (m *memStore) CountUnverifiedPets(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.pets {
		if !p.VerifiedByAdmin {
			n++
		}
	}
	return n, nil
}

// adoptions

func (m *memStore) CreateAdoption(ctx context.Context, a *domain.Adoption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Documents == nil {
		a.Documents = []domain.AdoptionDocument{}
	}
	m.adoptions[a.ID] = *a
	return nil
}

func (m *memStore) FindAdoptionByID(ctx context.Context, id primitive.ObjectID) (*domain.Adoption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.adoptions[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) HasActiveAdoption(ctx context.Context, petID, adopterID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.adoptions {
		if a.Pet == petID && a.Adopter == adopterID &&
			(a.Status == domain.AdoptionPending || a.Status == domain.AdoptionApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListAdoptionsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]domain.Adoption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Adoption
	for _, a := range m.adoptions {
		if a.Adopter == adopterID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListAllAdoptions(ctx context.Context) ([]domain.Adoption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Adoption, 0, len(m.adoptions))
	for _, a := range m.adoptions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) RecentAdoptions(ctx context.Context, limit int) ([]domain.Adoption, error) {
	out, _ := m.ListAllAdoptions(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ReplaceAdoption(ctx context.Context, a *domain.Adoption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.UpdatedAt = time.Now().UTC()
	m.adoptions[a.ID] = *a
	return nil
}

func (m *memStore) DeleteAdoption(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.adoptions, id)
	return nil
}

func (m *memStore) CountAdoptions(ctx context.Context, status string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.adoptions {
		if status == "" || a.Status == status {
			n++
		}
	}
	return n, nil
}
