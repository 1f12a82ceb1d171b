package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusAvailable = "Available"
	StatusPending   = "Pending"
	StatusAdopted   = "Adopted"
)

var (
	validSpecies = map[string]bool{"Dog": true, "Cat": true, "Bird": true, "Rabbit": true, "Other": true}
	validGender  = map[string]bool{"Male": true, "Female": true}
	validSize    = map[string]bool{"Small": true, "Medium": true, "Large": true}
	validStatus  = map[string]bool{StatusAvailable: true, StatusPending: true, StatusAdopted: true}
)

type HealthInfo struct {
	Vaccinated     bool   `bson:"vaccinated"      json:"vaccinated"`
	Neutered       bool   `bson:"neutered"        json:"neutered"`
	MedicalHistory string `bson:"medical_history" json:"medicalHistory"`
}

type Location struct {
	City    string `bson:"city"    json:"city"`
	State   string `bson:"state"   json:"state"`
	Country string `bson:"country" json:"country"`
}

type Pet struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"     json:"id"`
	Name            string             `bson:"name"              json:"name"`
	Species         string             `bson:"species"           json:"species"`
	Breed           string             `bson:"breed"             json:"breed"`
	Age             int                `bson:"age"               json:"age"`
	Gender          string             `bson:"gender"            json:"gender"`
	Size            string             `bson:"size"              json:"size"`
	Color           string             `bson:"color"             json:"color"`
	Description     string             `bson:"description"       json:"description"`
	HealthInfo      HealthInfo         `bson:"health_info"       json:"healthInfo"`
	Temperament     []string           `bson:"temperament"       json:"temperament"`
	Images          []string           `bson:"images"            json:"images"`
	Location        Location           `bson:"location"          json:"location"`
	Status          string             `bson:"status"            json:"status"`
	UploadedBy      primitive.ObjectID `bson:"uploaded_by"       json:"uploadedBy"`
	VerifiedByAdmin bool               `bson:"verified_by_admin" json:"verifiedByAdmin"`
	Featured        bool               `bson:"featured"          json:"featured"`
	Views           int64              `bson:"views"             json:"views"`
	CreatedAt       time.Time          `bson:"created_at"        json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at"        json:"updatedAt"`
}

const maxDescriptionLen = 1000

// Validate checks the closed sets and required fields. Status is defaulted
// to Available when empty so freshly created listings pass.
func (p *Pet) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("pet name is required")
	case !validSpecies[p.Species]:
		return errors.New("species must be one of Dog, Cat, Bird, Rabbit, Other")
	case p.Breed == "":
		return errors.New("breed is required")
	case p.Age < 0:
		return errors.New("age must be non-negative")
	case !validGender[p.Gender]:
		return errors.New("gender must be Male or Female")
	case !validSize[p.Size]:
		return errors.New("size must be Small, Medium or Large")
	case p.Color == "":
		return errors.New("color is required")
	case p.Description == "":
		return errors.New("description is required")
	case len(p.Description) > maxDescriptionLen:
		return errors.New("description too long")
	case len(p.Images) == 0:
		return errors.New("at least one image is required")
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if !validStatus[p.Status] {
		return errors.New("status must be Available, Pending or Adopted")
	}
	if p.Location.Country == "" {
		p.Location.Country = "India"
	}
	return nil
}

func ValidStatus(s string) bool { return validStatus[s] }
