package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/queue"
)

// GetDashboardStats godoc
// @Summary Dashboard counters and recent applications
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/stats [get]
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalPets, err := h.Store.CountPets(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	totalUsers, err := h.Store.CountUsers(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	totalAdoptions, err := h.Store.CountAdoptions(ctx, "")
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	pending, err := h.Store.CountAdoptions(ctx, domain.AdoptionPending)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	approved, err := h.Store.CountAdoptions(ctx, domain.AdoptionApproved)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	completed, err := h.Store.CountAdoptions(ctx, domain.AdoptionCompleted)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	unverifiedPets, err := h.Store.CountUnverifiedPets(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	recent, err := h.Store.RecentAdoptions(ctx, 5)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.attachPets(c, recent); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if recent == nil {
		recent = []domain.Adoption{}
	}

	ok(c, http.StatusOK, gin.H{
		"stats": gin.H{
			"totalPets":          totalPets,
			"totalUsers":         totalUsers,
			"totalAdoptions":     totalAdoptions,
			"pendingAdoptions":   pending,
			"approvedAdoptions":  approved,
			"completedAdoptions": completed,
			"unverifiedPets":     unverifiedPets,
			"recentAdoptions":    recent,
		},
	})
}

// GetAllAdoptions godoc
// @Summary All applications, newest first
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/adoptions [get]
func (h *Handler) GetAllAdoptions(c *gin.Context) {
	adoptions, err := h.Store.ListAllAdoptions(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := h.attachPets(c, adoptions); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if adoptions == nil {
		adoptions = []domain.Adoption{}
	}
	ok(c, http.StatusOK, gin.H{"adoptions": adoptions})
}

type updateAdoptionReq struct {
	Status          string `json:"status"`
	AdminNotes      string `json:"adminNotes"`
	RejectionReason string `json:"rejectionReason"`
}

// UpdateAdoptionStatus godoc
// @Summary Transition an application (Approved/Rejected/Completed)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "application id"
// @Param payload body updateAdoptionReq true "transition"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/adoptions/{id} [put]
func (h *Handler) UpdateAdoptionStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Application not found")
		return
	}
	var in updateAdoptionReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
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
	if !domain.CanTransition(adoption.Status, in.Status) {
		fail(c, http.StatusBadRequest,
			fmt.Sprintf("Cannot change application status from %s to %s", adoption.Status, in.Status))
		return
	}

	adoption.Status = in.Status
	adoption.AdminNotes = in.AdminNotes
	if in.Status == domain.AdoptionRejected {
		adoption.RejectionReason = in.RejectionReason
	}
	if err := h.Store.ReplaceAdoption(c.Request.Context(), adoption); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	switch in.Status {
	case domain.AdoptionApproved:
		err = h.Store.SetPetStatus(c.Request.Context(), adoption.Pet, domain.StatusAdopted)
	case domain.AdoptionRejected:
		err = h.Store.SetPetStatus(c.Request.Context(), adoption.Pet, domain.StatusAvailable)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	h.notifyAdopter(c, adoption)

	ok(c, http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Application %s successfully", strings.ToLower(in.Status)),
		"adoption": adoption,
	})
}

// notifyAdopter emits the adoption-status mail event. The transition is
// already persisted; a failed send never rolls it back.
func (h *Handler) notifyAdopter(c *gin.Context, adoption *domain.Adoption) {
	adopter, err := h.Store.FindUserByID(c.Request.Context(), adoption.Adopter)
	if err != nil || adopter == nil {
		return
	}
	pet, err := h.Store.FindPetByID(c.Request.Context(), adoption.Pet)
	petName := "your chosen pet"
	if err == nil && pet != nil {
		petName = pet.Name
	}
	h.publish(c, queue.KeyEmailAdoption, queue.EmailAdoption{
		To:      adopter.Email,
		PetName: petName,
		Status:  adoption.Status,
	})
}

// GetAllUsers godoc
// @Summary All users, newest first
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/users [get]
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	ok(c, http.StatusOK, gin.H{"count": len(users), "users": users})
}

// GetAllPets godoc
// @Summary All listings including unverified, newest first
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/pets [get]
func (h *Handler) GetAllPets(c *gin.Context) {
	pets, err := h.Store.ListAllPets(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	ok(c, http.StatusOK, gin.H{"count": len(pets), "pets": pets})
}

// VerifyPet godoc
// @Summary Approve a listing for public visibility
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/pets/{id}/verify [put]
func (h *Handler) VerifyPet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	pet, err := h.Store.FindPetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pet == nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	if err := h.Store.SetPetVerified(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	pet.VerifiedByAdmin = true
	ok(c, http.StatusOK, gin.H{"message": "Pet verified successfully", "pet": pet})
}

// ToggleFeaturedPet godoc
// @Summary Toggle the featured flag
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/pets/{id}/feature [put]
func (h *Handler) ToggleFeaturedPet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	pet, err := h.Store.FindPetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pet == nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	pet.Featured = !pet.Featured
	if err := h.Store.SetPetFeatured(c.Request.Context(), id, pet.Featured); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	msg := "Pet featured"
	if !pet.Featured {
		msg = "Pet unfeatured"
	}
	ok(c, http.StatusOK, gin.H{"message": msg, "pet": pet})
}
