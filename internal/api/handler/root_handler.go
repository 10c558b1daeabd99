package handler

import "net/http"

// Message is the body shape of the static API endpoints.
type Message struct {
	Message string `json:"message"`
}

// RootHandler serves the two static API endpoints. Neither performs I/O.
type RootHandler struct{}

func NewRootHandler() *RootHandler { return &RootHandler{} }

// Welcome handles GET /
//
// @Summary  Welcome message
// @Tags     api
// @Produce  json
// @Success  200  {object}  handler.Message
// @Router   / [get]
func (h *RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Message{Message: "Welcome to ChecksInMyHead API"})
}

// Ping handles GET /ping
//
// @Summary  Ping
// @Tags     api
// @Produce  json
// @Success  200  {object}  handler.Message
// @Router   /ping [get]
func (h *RootHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Message{Message: "pong"})
}
