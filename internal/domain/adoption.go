package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AdoptionPending   = "Pending"
	AdoptionApproved  = "Approved"
	AdoptionRejected  = "Rejected"
	AdoptionCompleted = "Completed"
)

var validHomeType = map[string]bool{"House": true, "Apartment": true, "Farm": true, "Other": true}

type ApplicationDetails struct {
	Experience        string `bson:"experience"          json:"experience"`
	HomeType          string `bson:"home_type"           json:"homeType"`
	HasYard           bool   `bson:"has_yard"            json:"hasYard"`
	OtherPets         string `bson:"other_pets"          json:"otherPets"`
	EmploymentStatus  string `bson:"employment_status"   json:"employmentStatus"`
	ReasonForAdoption string `bson:"reason_for_adoption" json:"reasonForAdoption"`
	PhoneNumber       string `bson:"phone_number"        json:"phoneNumber"`
}

type AdoptionDocument struct {
	Type string `bson:"type" json:"type"`
	URL  string `bson:"url"  json:"url"`
}

type Adoption struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Pet                primitive.ObjectID `bson:"pet"                 json:"petId"`
	Adopter            primitive.ObjectID `bson:"adopter"             json:"adopterId"`
	Status             string             `bson:"status"              json:"status"`
	ApplicationDetails ApplicationDetails `bson:"application_details" json:"applicationDetails"`
	Documents          []AdoptionDocument `bson:"documents"           json:"documents"`
	AppointmentDate    time.Time          `bson:"appointment_date,omitempty" json:"appointmentDate"`
	RejectionReason    string             `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	AdminNotes         string             `bson:"admin_notes,omitempty"      json:"adminNotes,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"          json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at"          json:"updatedAt"`

	// Populated for responses, never persisted.
	PetDoc *Pet `bson:"-" json:"pet,omitempty"`
}

// CanTransition is the application state machine: Pending may be approved or
// rejected, only an approved application may be completed. Cancellation is a
// delete, not a transition.
func CanTransition(from, to string) bool {
	switch from {
	case AdoptionPending:
		return to == AdoptionApproved || to == AdoptionRejected
	case AdoptionApproved:
		return to == AdoptionCompleted
	default:
		return false
	}
}

func ValidHomeType(s string) bool { return s == "" || validHomeType[s] }
