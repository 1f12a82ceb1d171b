package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
)

type createAdoptionReq struct {
	PetID              string                    `json:"petId"`
	ApplicationDetails domain.ApplicationDetails `json:"applicationDetails"`
	AppointmentDate    time.Time                 `json:"appointmentDate"`
}

// CreateAdoption godoc
// @Summary Apply to adopt an available listing
// @Tags adoption
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createAdoptionReq true "application"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/adoption [post]
func (h *Handler) CreateAdoption(c *gin.Context) {
	u := currentUser(c)

	var in createAdoptionReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !domain.ValidHomeType(in.ApplicationDetails.HomeType) {
		fail(c, http.StatusBadRequest, "homeType must be House, Apartment, Farm or Other")
		return
	}
	petID, err := primitive.ObjectIDFromHex(in.PetID)
	if err != nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}

	pet, err := h.Store.FindPetByID(c.Request.Context(), petID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pet == nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	if pet.Status != domain.StatusAvailable {
		fail(c, http.StatusBadRequest, "Pet is not available for adoption")
		return
	}

	active, err := h.Store.HasActiveAdoption(c.Request.Context(), petID, u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if active {
		fail(c, http.StatusBadRequest, "You already have an active application for this pet")
		return
	}

	adoption := &domain.Adoption{
		Pet:                petID,
		Adopter:            u.ID,
		Status:             domain.AdoptionPending,
		ApplicationDetails: in.ApplicationDetails,
		AppointmentDate:    in.AppointmentDate,
	}
	if err := h.Store.CreateAdoption(c.Request.Context(), adoption); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	// separate write; a crash in between is the accepted inconsistency window
	if err := h.Store.SetPetStatus(c.Request.Context(), petID, domain.StatusPending); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	ok(c, http.StatusCreated, gin.H{
		"message":  "Adoption application submitted successfully",
		"adoption": adoption,
	})
}

// GetMyApplications godoc
// @Summary List the caller's applications, newest first
// @Tags adoption
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/adoption/my-applications [get]
func (h *Handler) GetMyApplications(c *gin.Context) {
	u := currentUser(c)
	apps, err := h.Store.ListAdoptionsByAdopter(c.Request.Context(), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.attachPets(c, apps); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if apps == nil {
		apps = []domain.Adoption{}
	}
	ok(c, http.StatusOK, gin.H{"applications": apps})
}

// GetAdoptionByID godoc
// @Summary Application detail (adopter or admin)
// @Tags adoption
// @Security BearerAuth
// @Produce json
// @Param id path string true "application id"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/adoption/{id} [get]
func (h *Handler) GetAdoptionByID(c *gin.Context) {
	u := currentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Application not found")
		return
	}
	adoption, err := h.Store.FindAdoptionByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if adoption == nil {
		fail(c, http.StatusNotFound, "Application not found")
		return
	}
	if adoption.Adopter != u.ID && !c.GetBool(ctxIsAdmin) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}
	pet, err := h.Store.FindPetByID(c.Request.Context(), adoption.Pet)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	adoption.PetDoc = pet
	ok(c, http.StatusOK, gin.H{"adoption": adoption})
}

// CancelAdoption godoc
// @Summary Cancel own application; the listing reverts to Available
// @Tags adoption
// @Security BearerAuth
// @Produce json
// @Param id path string true "application id"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/adoption/{id} [delete]
func (h *Handler) CancelAdoption(c *gin.Context) {
	u := currentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Application not found")
		return
	}
	adoption, err := h.Store.FindAdoptionByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if adoption == nil {
		fail(c, http.StatusNotFound, "Application not found")
		return
	}
	// cancellation is adopter-only; admins use the status transition instead
	if adoption.Adopter != u.ID {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	if err := h.Store.SetPetStatus(c.Request.Context(), adoption.Pet, domain.StatusAvailable); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.Store.DeleteAdoption(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Application cancelled successfully"})
}

// attachPets batch-resolves the listings referenced by the applications.
func (h *Handler) attachPets(c *gin.Context, apps []domain.Adoption) error {
	if len(apps) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.Pet)
	}
	pets, err := h.Store.FindPetsByIDs(c.Request.Context(), ids)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]*domain.Pet, len(pets))
	for i := range pets {
		byID[pets[i].ID] = &pets[i]
	}
	for i := range apps {
		apps[i].PetDoc = byID[apps[i].Pet]
	}
	return nil
}
