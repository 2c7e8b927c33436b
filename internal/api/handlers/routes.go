package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parleyhq/parley/internal/api/middleware"
	"github.com/parleyhq/parley/internal/services/chat"
)

// RegisterRoutes wires the HTTP surface onto the router.
func RegisterRoutes(router *mux.Router, chatService chat.Service) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger)

	router.Handle("/register-user", middleware.RateLimit("register_user")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleRegisterUser(chatService, w, r)
	}))).Methods("POST")

	router.Handle("/chat", middleware.RateLimit("chat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleChat(chatService, w, r)
	}))).Methods("POST")

	router.Handle("/get-messages", middleware.RateLimit("get_messages")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleGetMessages(chatService, w, r)
	}))).Methods("POST")

	router.HandleFunc("/healthz", HandleHealth).Methods("GET")
}
