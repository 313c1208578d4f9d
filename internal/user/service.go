package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/auth"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/config"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/google/uuid"
)

// ErrInvalidCredentials usuário inexistente ou senha errada; a mensagem
// para o cliente é a mesma nos dois casos.
var ErrInvalidCredentials = fmt.Errorf("usuário ou senha inválidos")

// Store abstrai a persistência de usuários.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}

// Service autenticação e cadastro dos usuários do painel.
type Service struct {
	store Store
	cfg   config.AuthConfig
	log   logger.Logger
}

func NewService(store Store, cfg config.AuthConfig, log logger.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// RegisterInput dados do cadastro de um usuário do painel.
type RegisterInput struct {
	Username string   `json:"username"`
	Name     string   `json:"nome"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Register cria um usuário com a senha derivada por salt individual.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("user service not initialized")
	}
	ve := apperr.NewValidationError()
	if in.Username == "" {
		ve.Add("username", "Usuário é obrigatório")
	}
	if len(in.Password) < 6 {
		ve.Add("password", "Senha deve ter ao menos 6 caracteres")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{"atendente"}
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Roles:        RolesJoin(roles),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Infof("usuário cadastrado: %s", u.Username)
	}
	return u, nil
}

// LoginResult token emitido e o perfil autenticado.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"usuario"`
}

// Login valida as credenciais e emite um JWT com os papéis do usuário.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("user service not initialized")
	}
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		if s.log != nil {
			s.log.Warnf("tentativa de login recusada para %s", username)
		}
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.TTLHours) * time.Hour
	token, expiresAt, err := auth.GenerateAccessToken(s.cfg, u.ID, u.RolesSlice(), ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("user service not initialized")
	}
	return s.store.FindByID(ctx, id)
}
