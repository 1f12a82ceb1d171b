package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sneha-1019/PawfectHomes/internal/domain"
)

func applyBody(petID primitive.ObjectID) map[string]any {
	return map[string]any{
		"petId": petID.Hex(),
		"applicationDetails": map[string]any{
			"experience":        "grew up with dogs",
			"homeType":          "House",
			"hasYard":           true,
			"reasonForAdoption": "companionship",
			"phoneNumber":       "+91 9000000000",
		},
	}
}

func TestApplyMarksPetPending(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")

	w := e.do(t, http.MethodPost, "/api/adoption", e.token(t, adopter), applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	require.Equal(t, "Adoption application submitted successfully", body["message"])
	require.Equal(t, "Pending", body["adoption"].(map[string]any)["status"])

	got, _ := e.store.FindPetByID(context.Background(), pet.ID)
	require.Equal(t, domain.StatusPending, got.Status)
}

func TestApplyTwiceRejected(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")
	tok := e.token(t, adopter)

	w := e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	// the listing is Pending now, so the guard that fires is availability
	w = e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Pet is not available for adoption", decode(t, w)["message"])
}

func TestApplyDuplicateActiveApplication(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")
	tok := e.token(t, adopter)

	w := e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	// listing forced back to Available with the application still open
	require.NoError(t, e.store.SetPetStatus(context.Background(), pet.ID, domain.StatusAvailable))

	w = e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "You already have an active application for this pet", decode(t, w)["message"])
}

func TestApplyUnavailablePet(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Adopted")

	w := e.do(t, http.MethodPost, "/api/adoption", e.token(t, adopter), applyBody(pet.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Pet is not available for adoption", decode(t, w)["message"])
}

func TestApplyBadHomeType(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")

	body := applyBody(pet.ID)
	body["applicationDetails"].(map[string]any)["homeType"] = "Castle"
	w := e.do(t, http.MethodPost, "/api/adoption", e.token(t, adopter), body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyApplicationsIncludesPet(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")
	tok := e.token(t, adopter)

	w := e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodGet, "/api/adoption/my-applications", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	apps := decode(t, w)["applications"].([]any)
	require.Len(t, apps, 1)
	require.Equal(t, "Bruno", apps[0].(map[string]any)["pet"].(map[string]any)["name"])
}

func TestAdoptionDetailAdopterOrAdmin(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	stranger := e.seedUser(t, "Stranger", "stranger@example.com", true)
	_, adminTok := e.seedAdmin(t)
	pet := e.seedPet(t, owner, true, "Available")

	w := e.do(t, http.MethodPost, "/api/adoption", e.token(t, adopter), applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := decode(t, w)["adoption"].(map[string]any)["id"].(string)

	w = e.do(t, http.MethodGet, "/api/adoption/"+appID, e.token(t, stranger), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/api/adoption/"+appID, e.token(t, adopter), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/adoption/"+appID, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCancelReleasesPet(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	pet := e.seedPet(t, owner, true, "Available")
	tok := e.token(t, adopter)

	w := e.do(t, http.MethodPost, "/api/adoption", tok, applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := decode(t, w)["adoption"].(map[string]any)["id"].(string)

	w = e.do(t, http.MethodDelete, "/api/adoption/"+appID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Application cancelled successfully", decode(t, w)["message"])

	gotPet, _ := e.store.FindPetByID(context.Background(), pet.ID)
	require.Equal(t, domain.StatusAvailable, gotPet.Status)
	id, _ := primitive.ObjectIDFromHex(appID)
	gotApp, _ := e.store.FindAdoptionByID(context.Background(), id)
	require.Nil(t, gotApp)
}

func TestCancelIsAdopterOnly(t *testing.T) {
	e := newEnv(t)
	owner := e.seedUser(t, "Owner", "owner@example.com", true)
	adopter := e.seedUser(t, "Adopter", "adopter@example.com", true)
	_, adminTok := e.seedAdmin(t)
	pet := e.seedPet(t, owner, true, "Available")

	w := e.do(t, http.MethodPost, "/api/adoption", e.token(t, adopter), applyBody(pet.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := decode(t, w)["adoption"].(map[string]any)["id"].(string)

	// even admins go through the status transition, not cancellation
	w = e.do(t, http.MethodDelete, "/api/adoption/"+appID, adminTok, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}
