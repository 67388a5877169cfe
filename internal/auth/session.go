// Package auth keeps the signed-in session in local storage.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// Key is the local storage slot holding the session blob.
const Key = "jwt"

var ErrNotAuthenticated = errors.New("auth: not signed in")

// ServerLogout ends the session on the backend.
type ServerLogout interface {
	Signout(ctx context.Context, userID models.ID) error
}

// CartClearer empties the local cart.
type CartClearer interface {
	Clear(ctx context.Context) error
}

type Helper struct {
	store     storage.Store
	available bool
	cart      CartClearer
	server    ServerLogout
	logger    *zap.Logger
}

// New wires the helper. available is the startup capability check of store.
func New(store storage.Store, available bool, cart CartClearer, server ServerLogout, logger *zap.Logger) *Helper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Helper{
		store:     store,
		available: available,
		cart:      cart,
		server:    server,
		logger:    logger.Named("auth"),
	}
}

// Authenticate stores the session returned by signin.
func (h *Helper) Authenticate(ctx context.Context, session *models.Session) error {
	if !h.available {
		return storage.ErrUnavailable
	}
	if session == nil {
		return errors.New("auth: nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if err := h.store.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("auth: save session: %w", err)
	}

	h.logger.Info("✅ signed in", zap.String("email", session.User.Email))
	return nil
}

// IsAuthenticated returns the stored session, or false when there is none
// (or it cannot be read).
func (h *Helper) IsAuthenticated(ctx context.Context) (*models.Session, bool) {
	if !h.available {
		return nil, false
	}

	raw, err := h.store.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.logger.Warn("⚠️ session slot unreadable", zap.Error(err))
		}
		return nil, false
	}
	// a cleared slot holds null, which means nobody is signed in
	if trimmed := strings.TrimSpace(raw); trimmed == "" || trimmed == "null" {
		return nil, false
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		h.logger.Warn("⚠️ session slot corrupt", zap.Error(err))
		return nil, false
	}
	return &session, true
}

// RequireSession guards the pages that need a signed-in user.
func (h *Helper) RequireSession(ctx context.Context) (*models.Session, error) {
	session, ok := h.IsAuthenticated(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// Signout forgets the session, empties the cart and then tells the backend.
// Local cleanup always runs; a backend failure is reported after it.
func (h *Helper) Signout(ctx context.Context) error {
	if !h.available {
		return storage.ErrUnavailable
	}

	session, signedIn := h.IsAuthenticated(ctx)

	var errs []error
	if err := h.store.Remove(ctx, Key); err != nil {
		errs = append(errs, fmt.Errorf("auth: remove session: %w", err))
	}
	if h.cart != nil {
		if err := h.cart.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("auth: empty cart: %w", err))
		}
	}

	if signedIn && session.User.ID != "" && h.server != nil {
		if err := h.server.Signout(ctx, session.User.ID); err != nil {
			h.logger.Warn("⚠️ server logout failed", zap.String("user_id", session.User.ID.String()), zap.Error(err))
			errs = append(errs, err)
		} else {
			h.logger.Info("signout success", zap.String("user_id", session.User.ID.String()))
		}
	}

	return errors.Join(errs...)
}
