package user

import (
	"context"
	"strings"
	"time"

	"sutra-be/internal/address"
	"sutra-be/internal/logger"
	"sutra-be/internal/storage"
	"sutra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the mock authentication collaborator: it tracks which user a
// storefront session is signed in as. Saved addresses belong to the user
// id and follow the shopper across sessions.
// Only the admin login checks a credential.
type Service interface {
	StartSession(ctx context.Context) (*Session, error)
	Login(ctx context.Context, sessionID string, input LoginInput) (*Session, error)
	AdminLogin(ctx context.Context, sessionID string, input AdminLoginInput) (*Session, error)
	Logout(ctx context.Context, sessionID string) (*Session, error)
	Current(ctx context.Context, sessionID string) (*AppUser, error)
	AddAddress(ctx context.Context, sessionID string, a address.ShippingAddress) (*address.ShippingAddress, error)
	UpdateAddress(ctx context.Context, sessionID, addressID string, a address.ShippingAddress) (*address.ShippingAddress, error)
	RemoveAddress(ctx context.Context, sessionID, addressID string) error
	ParseToken(token string) (*CustomClaims, error)
}

type service struct {
	repo  Repository
	opts  Options
	locks *storage.KeyedMutex
	now   func() time.Time
}

func NewService(repo Repository, opts Options) Service {
	return &service{
		repo:  repo,
		opts:  opts,
		locks: storage.NewKeyedMutex(),
		now:   time.Now,
	}
}

// StartSession issues a guest token for a new session id.
func (s *service) StartSession(ctx context.Context) (*Session, error) {
	sid := uuid.NewString()
	token, err := GenerateJWT(s.opts.JWTSecret, sid, "", utils.RoleRetail, "", s.now())
	if err != nil {
		logger.FromCtx(ctx).Error("failed to generate jwt",
			zap.String("layer", "service"),
			zap.String("method", "StartSession"),
			zap.Error(err),
		)
		return nil, err
	}
	return &Session{Token: token, SessionID: sid}, nil
}

// Login attaches a retail user to the session. The user id is derived from
// the email so the same shopper sees the same orders from any session.
func (s *service) Login(ctx context.Context, sessionID string, input LoginInput) (*Session, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	input.Email = email
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	uid := UserIDForEmail(email)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	u, ok, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session user", zap.Error(err))
		return nil, err
	}
	if !ok || u.UID != uid {
		u = &AppUser{UID: uid}
	}
	book, err := s.repo.LoadAddresses(ctx, uid)
	if err != nil {
		log.Error("failed to load address book", zap.Error(err))
		return nil, err
	}
	u.Addresses = book
	u.Email = email
	u.Role = utils.RoleRetail
	u.IsAdmin = false
	if input.DisplayName != "" {
		u.DisplayName = input.DisplayName
	}
	if input.Phone != "" {
		u.Phone = input.Phone
	}

	return s.persistAndIssue(ctx, log, sessionID, u)
}

// AdminLogin checks the configured admin credentials.
func (s *service) AdminLogin(ctx context.Context, sessionID string, input AdminLoginInput) (*Session, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdminLogin"),
	)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if s.opts.AdminEmail == "" || s.opts.AdminPasswordHash == "" ||
		email != strings.ToLower(s.opts.AdminEmail) ||
		!CheckPasswordHash(input.Password, s.opts.AdminPasswordHash) {
		log.Warn("admin login rejected")
		return nil, ErrInvalidCredentials
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	uid := UserIDForEmail(email)
	book, err := s.repo.LoadAddresses(ctx, uid)
	if err != nil {
		log.Error("failed to load address book", zap.Error(err))
		return nil, err
	}
	u := &AppUser{
		UID:         uid,
		Email:       email,
		DisplayName: "Administrator",
		Role:        utils.RoleAdmin,
		IsAdmin:     true,
		Addresses:   book,
	}
	return s.persistAndIssue(ctx, log, sessionID, u)
}

// Logout drops the session user and returns a guest token for the same
// session, so the cart survives.
func (s *service) Logout(ctx context.Context, sessionID string) (*Session, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	token, err := GenerateJWT(s.opts.JWTSecret, sessionID, "", utils.RoleRetail, "", s.now())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, SessionID: sessionID}, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*AppUser, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	u, ok, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotSignedIn
	}
	book, err := s.repo.LoadAddresses(ctx, u.UID)
	if err != nil {
		return nil, err
	}
	u.Addresses = book
	return u, nil
}

func (s *service) AddAddress(ctx context.Context, sessionID string, a address.ShippingAddress) (*address.ShippingAddress, error) {
	var saved address.ShippingAddress
	err := s.mutateBook(ctx, sessionID, "AddAddress", func(book []address.ShippingAddress) ([]address.ShippingAddress, error) {
		out, added, err := address.Add(book, a)
		saved = added
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) UpdateAddress(
	ctx context.Context,
	sessionID, addressID string,
	a address.ShippingAddress,
) (*address.ShippingAddress, error) {
	var saved address.ShippingAddress
	err := s.mutateBook(ctx, sessionID, "UpdateAddress", func(book []address.ShippingAddress) ([]address.ShippingAddress, error) {
		out, updated, err := address.Update(book, addressID, a)
		saved = updated
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) RemoveAddress(ctx context.Context, sessionID, addressID string) error {
	return s.mutateBook(ctx, sessionID, "RemoveAddress", func(book []address.ShippingAddress) ([]address.ShippingAddress, error) {
		return address.Remove(book, addressID)
	})
}

func (s *service) ParseToken(token string) (*CustomClaims, error) {
	return ParseJWT(s.opts.JWTSecret, token)
}

func (s *service) mutateBook(
	ctx context.Context,
	sessionID, method string,
	fn func([]address.ShippingAddress) ([]address.ShippingAddress, error),
) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
	)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	u, ok, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session user", zap.Error(err))
		return err
	}
	if !ok {
		return ErrNotSignedIn
	}

	current, err := s.repo.LoadAddresses(ctx, u.UID)
	if err != nil {
		log.Error("failed to load address book", zap.Error(err))
		return err
	}
	book, err := fn(current)
	if err != nil {
		log.Info("address book change rejected", zap.Error(err))
		return err
	}
	u.Addresses = book

	if err := s.repo.SaveAddresses(ctx, u.UID, book); err != nil {
		log.Error("failed to save address book", zap.Error(err))
		return err
	}
	if err := s.repo.Save(ctx, sessionID, u); err != nil {
		log.Error("failed to save user", zap.Error(err))
		return err
	}
	log.Info("address book updated", zap.Int("addresses", len(book)))
	return nil
}

func (s *service) persistAndIssue(ctx context.Context, log *zap.Logger, sessionID string, u *AppUser) (*Session, error) {
	if err := s.repo.Save(ctx, sessionID, u); err != nil {
		log.Error("failed to save user", zap.Error(err))
		return nil, err
	}

	token, err := GenerateJWT(s.opts.JWTSecret, sessionID, u.UID, u.Role, u.Email, s.now())
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.UID), zap.Error(err))
		return nil, err
	}

	log.Info("session signed in",
		zap.String("user_id", u.UID),
		zap.String("role", u.Role),
	)
	return &Session{Token: token, SessionID: sessionID, User: u}, nil
}

// UserIDForEmail is a stable user id for an email address.
func UserIDForEmail(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	return nil
}
