package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/identity"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de usuarios, login, logout y sesión actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	resolver *identity.Resolver
	sink     audit.Sink
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, resolver *identity.Resolver, sink audit.Sink, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, resolver: resolver, sink: sink, jwtCfg: jwtCfg, now: time.Now}
}

// Signup crea un usuario: hashea password con bcrypt y persiste.
// Mientras no exista ningún usuario el alta es libre (primer admin); después solo un admin puede crear usuarios.
// Rol distinto de admin/staff = staff. Username repetido = ErrUsernameTaken.
func (uc *AuthUseCase) Signup(ctx context.Context, caller *entity.Actor, in dto.SignupRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrMissingInput
	}
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if caller == nil || !caller.Valid() {
			return nil, domain.ErrUnauthenticated
		}
		if !caller.IsAdmin() {
			return nil, domain.ErrForbidden
		}
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		role = entity.RoleStaff
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	entry := entity.AuditEntry{
		Kind:    entity.AuditAuth,
		Message: "User created",
		Path:    "/api/auth/signup",
		Meta:    map[string]any{"newUserId": user.ID, "username": user.Username, "role": string(user.Role)},
	}
	if caller != nil {
		entry.UserID = caller.ID
	}
	uc.sink.Record(ctx, entry)
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Los intentos fallidos quedan en la bitácora.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.sink.Record(ctx, entity.AuditEntry{
			Kind:    entity.AuditAuth,
			Message: "Login failed: unknown user",
			Path:    "/api/auth/login",
			Meta:    map[string]any{"username": username},
		})
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.sink.Record(ctx, entity.AuditEntry{
			UserID:  user.ID,
			Kind:    entity.AuditAuth,
			Message: "Login failed: wrong password",
			Path:    "/api/auth/login",
		})
		return nil, domain.ErrUnauthenticated
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.sink.Record(ctx, entity.AuditEntry{
		UserID:  user.ID,
		Kind:    entity.AuditAuth,
		Message: "User logged in",
		Path:    "/api/auth/login",
	})
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      *toUserResponse(user),
	}, nil
}

// Logout revoca el token de la sesión hasta su vencimiento.
func (uc *AuthUseCase) Logout(ctx context.Context, session *identity.Session) error {
	if session == nil {
		return nil
	}
	if err := uc.resolver.Revoke(ctx, session); err != nil {
		return err
	}
	uc.sink.Record(ctx, entity.AuditEntry{
		UserID:  session.Actor.ID,
		Kind:    entity.AuditAuth,
		Message: "User logged out",
		Path:    "/api/auth/logout",
	})
	return nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return toUserResponse(user), nil
}

// IsCredentialError true para los errores de login que se responden como 401 genérico.
func IsCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthenticated)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
