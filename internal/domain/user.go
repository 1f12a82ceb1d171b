package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"       json:"id"`
	Name            string               `bson:"name"                json:"name"`
	Email           string               `bson:"email"               json:"email"`
	PasswordHash    string               `bson:"password_hash,omitempty" json:"-"`
	GoogleID        string               `bson:"google_id,omitempty" json:"-"`
	Avatar          string               `bson:"avatar,omitempty"    json:"avatar"`
	IsEmailVerified bool                 `bson:"is_email_verified"   json:"isEmailVerified"`
	OTP             string               `bson:"otp,omitempty"       json:"-"`
	OTPExpiry       time.Time            `bson:"otp_expiry,omitempty" json:"-"`
	IsAdmin         bool                 `bson:"is_admin"            json:"isAdmin"`
	SavedPets       []primitive.ObjectID `bson:"saved_pets"          json:"savedPets"`
	MyUploads       []primitive.ObjectID `bson:"my_uploads"          json:"myUploads"`
	CreatedAt       time.Time            `bson:"created_at"          json:"createdAt"`
}

// ResolveAdmin is the single place the admin rule lives: the stored flag, or
// a match against the configured admin address.
func ResolveAdmin(u *User, adminEmail string) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin || (adminEmail != "" && u.Email == adminEmail)
}

// PublicUser is the projection returned by auth endpoints.
type PublicUser struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Avatar  string             `json:"avatar"`
	IsAdmin bool               `json:"isAdmin"`
}

func (u *User) Public(adminEmail string) PublicUser {
	return PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Avatar:  u.Avatar,
		IsAdmin: ResolveAdmin(u, adminEmail),
	}
}
