package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

const AdminSessionKey = "user"

var _ port.AdminAuthenticator = (*AdminGate)(nil)

// An AdminGate checks a single configured credential pair and keeps
// the admin session marker in snapshot storage.
//
// There is no expiry and no server-side verification beyond that.
type AdminGate struct {
	storage      port.SnapshotStorage
	email        string
	passwordHash []byte
}

func NewAdminGate(
	storage port.SnapshotStorage, email, password string,
) (AdminGate, error) {
	const op = "NewAdminGate"

	if email == "" || password == "" {
		return AdminGate{}, fmt.Errorf("%s: empty admin credentials", op)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return AdminGate{}, fmt.Errorf("%s: %w", op, err)
	}

	return AdminGate{
		storage:      storage,
		email:        email,
		passwordHash: hash,
	}, nil
}

func (g AdminGate) Login(ctx context.Context, email, password string) error {
	const op = "AdminGate.Login"
	log := slog.With("op", op)

	if email != g.email {
		log.Warn("rejected login", "email", email)
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if err != nil {
		log.Warn("rejected login", "email", email)
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	session := domain.AdminSession{Email: email, Role: domain.RoleAdmin}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := g.storage.Set(ctx, AdminSessionKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in", "email", email)
	return nil
}

func (g AdminGate) Logout(ctx context.Context) error {
	const op = "AdminGate.Logout"

	err := g.storage.Delete(ctx, AdminSessionKey)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Session returns the stored session marker.
//
// An unreadable marker is removed.
func (g AdminGate) Session(ctx context.Context) (domain.AdminSession, bool) {
	const op = "AdminGate.Session"
	log := slog.With("op", op)

	data, err := g.storage.Get(ctx, AdminSessionKey)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			log.Error("failed to read session", "err", err)
		}
		return domain.AdminSession{}, false
	}

	var session domain.AdminSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Warn("session marker discarded", "err", err)
		if err := g.storage.Delete(ctx, AdminSessionKey); err != nil {
			log.Error("failed to delete session", "err", err)
		}
		return domain.AdminSession{}, false
	}
	return session, true
}

func (g AdminGate) Authorize(ctx context.Context) error {
	const op = "AdminGate.Authorize"

	session, ok := g.Session(ctx)
	if !ok || !session.IsAdmin() {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	return nil
}
