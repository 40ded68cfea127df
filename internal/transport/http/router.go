package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"messenger/internal/authz"
	"messenger/internal/dto"
	"messenger/internal/observability/metrics"
	obsmw "messenger/internal/observability/middleware"
	"messenger/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	svc    *service.Service
	tokens *authz.Tokens
}

func NewRouter(svc *service.Service, tokens *authz.Tokens, corsOrigins []string) http.Handler {
	h := &Handler{svc: svc, tokens: tokens}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(corsOrigins),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Public: initial sign-in and phone search.
	r.Post("/v1/auth/signin", h.handleSignIn)
	r.Get("/v1/users/search", h.handleSearch)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Middleware)

		pr.Get("/v1/contacts", h.handleListContacts)
		pr.Post("/v1/contacts", h.handleAddContact)
		pr.Delete("/v1/contacts/{contactID}", h.handleRemoveContact)

		pr.Get("/v1/chats", h.handleListChats)
		pr.Post("/v1/chats/direct", h.handleCreateDirectChat)
		pr.Get("/v1/chats/{chatID}/messages", h.handleListMessages)
		pr.Post("/v1/chats/{chatID}/messages", h.handleSendMessage)
	})

	return r
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	reqID := obsmw.RequestIDFromContext(r.Context())
	var req dto.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return
	}
	user, err := h.svc.SignIn(r.Context(), req.Phone, req.Name)
	if err != nil {
		writeServiceError(w, err)
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		slog.Warn("sign-in failed", "error", err, "request_id", reqID)
		return
	}
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		slog.Error("token issue failed", "error", err, "request_id", reqID)
		return
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()
	slog.Info("user signed in", "user_id", user.ID, "request_id", reqID)
	writeJSON(w, http.StatusOK, dto.SignInResponse{UserView: user, Token: token})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.SearchByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	contacts, err := h.svc.ListContacts(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) handleAddContact(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req dto.AddContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.svc.AddContact(r.Context(), callerID, req.ContactID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ContactActionResponse{Success: true})
}

func (h *Handler) handleRemoveContact(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveContact(r.Context(), callerID, chi.URLParam(r, "contactID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ContactActionResponse{Success: true})
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	chats, err := h.svc.ListChats(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *Handler) handleCreateDirectChat(w http.ResponseWriter, r *http.Request) {
	reqID := obsmw.RequestIDFromContext(r.Context())
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req dto.CreateDirectChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		metrics.DirectChatsCreatedTotal.WithLabelValues("failure").Inc()
		return
	}
	chatID, err := h.svc.CreateDirectChat(r.Context(), callerID, req.ContactID)
	if err != nil {
		writeServiceError(w, err)
		metrics.DirectChatsCreatedTotal.WithLabelValues("failure").Inc()
		slog.Warn("direct chat create failed", "error", err, "request_id", reqID)
		return
	}
	metrics.DirectChatsCreatedTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, dto.CreateDirectChatResponse{ChatID: chatID.String()})
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	msgs, err := h.svc.ListMessages(r.Context(), callerID, chi.URLParam(r, "chatID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	reqID := obsmw.RequestIDFromContext(r.Context())
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		metrics.MessagesSentTotal.WithLabelValues("failure").Inc()
		return
	}
	res, err := h.svc.SendMessage(r.Context(), callerID, chi.URLParam(r, "chatID"), req.Text)
	if err != nil {
		writeServiceError(w, err)
		metrics.MessagesSentTotal.WithLabelValues("failure").Inc()
		slog.Warn("send message failed", "error", err, "request_id", reqID)
		return
	}
	metrics.MessagesSentTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, res)
}

// callerFrom resolves the authenticated subject set by the authz middleware.
func callerFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sub, ok := authz.SubjectFrom(r.Context())
	if !ok || sub == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := "internal error"
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
		body = err.Error()
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrChatNotFound):
		status = http.StatusNotFound
		body = err.Error()
	case errors.Is(err, service.ErrNotChatMember):
		status = http.StatusForbidden
		body = err.Error()
	}
	http.Error(w, body, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func originsIfSet(in []string) []string {
	out := []string{}
	for _, o := range in {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
