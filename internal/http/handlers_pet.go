package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
	"github.com/sneha-1019/PawfectHomes/internal/log"
	"github.com/sneha-1019/PawfectHomes/internal/repo"
)

// GetPets godoc
// @Summary Search verified listings
// @Tags pets
// @Produce json
// @Param search query string false "substring over name/breed/description"
// @Param species query string false "Dog|Cat|Bird|Rabbit|Other|All"
// @Param gender query string false "Male|Female|All"
// @Param size query string false "Small|Medium|Large|All"
// @Param status query string false "Available|Pending|Adopted|All"
// @Param sort query string false "newest|oldest|name|popular"
// @Success 200 {object} map[string]any
// @Router /api/pets [get]
func (h *Handler) GetPets(c *gin.Context) {
	q := repo.PetQuery{
		Search:  c.Query("search"),
		Species: c.Query("species"),
		Gender:  c.Query("gender"),
		Size:    c.Query("size"),
		Status:  c.Query("status"),
		Sort:    c.Query("sort"),
	}
	pets, err := h.Store.SearchPets(c.Request.Context(), q)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	ok(c, http.StatusOK, gin.H{"count": len(pets), "pets": pets})
}

// GetFeaturedPets godoc
// @Summary Six most recent featured, verified, available listings
// @Tags pets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/pets/featured [get]
func (h *Handler) GetFeaturedPets(c *gin.Context) {
	pets, err := h.Store.FeaturedPets(c.Request.Context(), 6)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	ok(c, http.StatusOK, gin.H{"pets": pets})
}

// GetPetByID godoc
// @Summary Listing detail; counts a view
// @Tags pets
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/pets/{id} [get]
func (h *Handler) GetPetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	pet, err := h.Store.GetPetAndCountView(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if pet == nil {
		fail(c, http.StatusNotFound, "Pet not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"pet": pet})
}

// CreatePet godoc
// @Summary Create a listing (multipart: fields + image files)
// @Tags pets
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/pets [post]
func (h *Handler) CreatePet(c *gin.Context) {
	u := currentUser(c)

	age, _ := strconv.Atoi(c.PostForm("age"))
	pet := &domain.Pet{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Species:     c.PostForm("species"),
		Breed:       strings.TrimSpace(c.PostForm("breed")),
		Age:         age,
		Gender:      c.PostForm("gender"),
		Size:        c.PostForm("size"),
		Color:       strings.TrimSpace(c.PostForm("color")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Status:      domain.StatusAvailable,
		UploadedBy:  u.ID,
	}
	if v := c.PostForm("healthInfo"); v != "" {
		if err := json.Unmarshal([]byte(v), &pet.HealthInfo); err != nil {
			fail(c, http.StatusBadRequest, "Invalid healthInfo")
			return
		}
	}
	if v := c.PostForm("temperament"); v != "" {
		if err := json.Unmarshal([]byte(v), &pet.Temperament); err != nil {
			fail(c, http.StatusBadRequest, "Invalid temperament")
			return
		}
	}
	if v := c.PostForm("location"); v != "" {
		if err := json.Unmarshal([]byte(v), &pet.Location); err != nil {
			fail(c, http.StatusBadRequest, "Invalid location")
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, "Could not read image")
			return
		}
		url, err := h.Uploader.Upload(c.Request.Context(), f, fh.Filename)
		f.Close()
		if err != nil {
			log.Errorf("image upload: %v", err)
			fail(c, http.StatusInternalServerError, "Image upload failed")
			return
		}
		pet.Images = append(pet.Images, url)
	}

	// admin uploads skip the moderation queue
	pet.VerifiedByAdmin = c.GetBool(ctxIsAdmin)

	if err := pet.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Store.CreatePet(c.Request.Context(), pet); err != nil {
		fail(c, http.StatusInternalServerError, "Server error while creating pet")
		return
	}
	if err := h.Store.AddUserUpload(c.Request.Context(), u.ID, pet.ID); err != nil {
		log.Errorf("record upload for user %s: %v", u.ID.Hex(), err)
	}

	ok(c, http.StatusCreated, gin.H{"pet": pet})
}

type updatePetReq struct {
	Name        *string            `json:"name"`
	Species     *string            `json:"species"`
	Breed       *string            `json:"breed"`
	Age         *int               `json:"age"`
	Gender      *string            `json:"gender"`
	Size        *string            `json:"size"`
	Color       *string            `json:"color"`
	Description *string            `json:"description"`
	HealthInfo  *domain.HealthInfo `json:"healthInfo"`
	Temperament *[]string          `json:"temperament"`
	Images      *[]string          `json:"images"`
	Location    *domain.Location   `json:"location"`
	Status      *string            `json:"status"`
}

// UpdatePet godoc
// @Summary Update a listing (owner or admin)
// @Tags pets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/pets/{id} [put]
func (h *Handler) UpdatePet(c *gin.Context) {
	u := currentUser(c)
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
	if pet.UploadedBy != u.ID && !c.GetBool(ctxIsAdmin) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	var in updatePetReq
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	applyPetPatch(pet, &in)

	if err := pet.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Store.ReplacePet(c.Request.Context(), pet); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, http.StatusOK, gin.H{"pet": pet})
}

func applyPetPatch(p *domain.Pet, in *updatePetReq) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.HealthInfo != nil {
		p.HealthInfo = *in.HealthInfo
	}
	if in.Temperament != nil {
		p.Temperament = *in.Temperament
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
}

// DeletePet godoc
// @Summary Delete a listing (owner or admin)
// @Tags pets
// @Security BearerAuth
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/pets/{id} [delete]
func (h *Handler) DeletePet(c *gin.Context) {
	u := currentUser(c)
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
	if pet.UploadedBy != u.ID && !c.GetBool(ctxIsAdmin) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}
	if err := h.Store.DeletePet(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

// ToggleSavePet godoc
// @Summary Toggle a bookmark
// @Tags pets
// @Security BearerAuth
// @Produce json
// @Param id path string true "pet id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/pets/{id}/save [post]
func (h *Handler) ToggleSavePet(c *gin.Context) {
	u := currentUser(c)
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
	saved, err := h.Store.ToggleSavedPet(c.Request.Context(), u.ID, id)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	msg := "Pet saved successfully"
	if !saved {
		msg = "Pet removed from saved"
	}
	ok(c, http.StatusOK, gin.H{"isSaved": saved, "message": msg})
}
