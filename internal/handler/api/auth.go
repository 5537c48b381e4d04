// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/pagesmith/internal/middleware"
	"github.com/olegiv/pagesmith/internal/model"
)

// DemoLogin signs the visitor in as the built-in demo user.
func (h *Handler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Renew the token to prevent session fixation.
	if err := h.sessions.RenewToken(ctx); err != nil {
		h.logger.Error("failed to renew session token", "error", err)
		WriteInternalError(w, "Failed to sign in")
		return
	}

	user := model.DemoUser()
	h.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)
	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "Demo login", user.ID, map[string]any{
		"ip": r.RemoteAddr,
	})
	h.logger.Info("demo user signed in", "user_id", user.ID)

	WriteSuccess(w, user, nil)
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := currentUser(r)
	user := model.User{ID: id}
	if id == model.DemoUserID {
		user = model.DemoUser()
	}
	WriteSuccess(w, user, nil)
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := h.sessions.GetString(ctx, middleware.SessionKeyUserID)

	if err := h.sessions.Destroy(ctx); err != nil {
		h.logger.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Failed to sign out")
		return
	}
	if userID != "" {
		_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "Logout", userID, nil)
	}

	w.WriteHeader(http.StatusNoContent)
}
