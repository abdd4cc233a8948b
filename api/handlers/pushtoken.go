package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carelinkhq/carelink-api/databases"
	"github.com/carelinkhq/carelink-api/models"
)

// PushToken represents the push token registration handler
type PushToken struct {
	DB databases.PushTokenDatabase
}

// RegisterPushTokenHandler handles POST requests to register a device's Expo
// push token. Re-registering the same token is an upsert.
func (h PushToken) RegisterPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var token models.PushToken
	if err := json.NewDecoder(r.Body).Decode(&token); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if token.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	if token.Token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.DB.Register(r.Context(), token); err != nil {
		writeDomainError(w, err, "failed to register push token")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Push token registered successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode push token response")
		return
	}
}

// DeletePushTokenHandler handles DELETE requests to unregister a push token
func (h PushToken) DeletePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	token := mux.Vars(r)["token"]
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.DB.DeleteByToken(r.Context(), token); err != nil {
		writeDomainError(w, err, "failed to delete push token")
		return
	}

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"message": "Push token deleted successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeDomainError(w, err, "failed to encode delete response")
		return
	}
}
