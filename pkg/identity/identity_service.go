package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"souschef/domain"
	"souschef/entities"
	"souschef/internal/utils/logger"
	"souschef/pkg/jwt"
	"souschef/pkg/validation"
)

type (
	// IdentityService is the local identity provider. Authenticate backs the
	// HTTP auth middleware.
	IdentityService interface {
		domain.IdentityProvider
		Authenticate(ctx context.Context, token string) (domain.Principal, error)
	}

	identityService struct {
		identityRepository IdentityRepository
		jwtService         jwt.JWTService
		now                func() time.Time
	}
)

var _ domain.IdentityProvider = (*identityService)(nil)

func NewIdentityService(identityRepository IdentityRepository, jwtService jwt.JWTService) IdentityService {
	return &identityService{
		identityRepository: identityRepository,
		jwtService:         jwtService,
		now:                time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp enforces the password policy before anything is stored. Policy
// violations are returned as is so the client can show the unmet rules.
func (s *identityService) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return domain.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.FromContext(ctx).Error("identity.hash_failed", zap.Error(err))
		return domain.Identity{}, domain.ErrSignUp
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.identityRepository.CreateUser(ctx, user); err != nil {
		logger.FromContext(ctx).Warn("identity.sign_up_failed", zap.Error(err))
		return domain.Identity{}, domain.ErrSignUp
	}

	return s.issue(ctx, user, domain.ErrSignUp)
}

func (s *identityService) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	user, err := s.identityRepository.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.FromContext(ctx).Error("identity.lookup_failed", zap.Error(err))
		}
		return domain.Identity{}, domain.ErrSignIn
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Identity{}, domain.ErrSignIn
	}

	return s.issue(ctx, user, domain.ErrSignIn)
}

// SignOut invalidates every token issued to the user so far.
func (s *identityService) SignOut(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrSignOut
	}
	if err := s.identityRepository.MarkSignedOut(ctx, id, s.now()); err != nil {
		logger.FromContext(ctx).Warn("identity.sign_out_failed", zap.String("user_id", userID), zap.Error(err))
		return domain.ErrSignOut
	}
	return nil
}

func (s *identityService) DeleteIdentity(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	if err := s.identityRepository.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%w: delete identity: %v", domain.ErrIdentity, err)
	}
	return nil
}

// Authenticate accepts a token only while its user exists and has not signed
// out since it was issued.
func (s *identityService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.jwtService.GetClaimsByToken(token)
	if err != nil {
		return domain.Principal{}, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	user, err := s.identityRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	if claims.Version != user.TokenVersion {
		return domain.Principal{}, domain.ErrTokenExpired
	}
	return domain.Principal{UserID: user.ID.String(), Email: user.Email, Role: user.Role}, nil
}

func (s *identityService) issue(ctx context.Context, user *entities.User, failure error) (domain.Identity, error) {
	token, issuedAt, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role, user.TokenVersion)
	if err != nil {
		logger.FromContext(ctx).Error("identity.token_failed", zap.Error(err))
		return domain.Identity{}, failure
	}
	return domain.Identity{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Token:    token,
		IssuedAt: issuedAt,
	}, nil
}
