package service

import (
	"context"
	"time"

	"gestionhomeclean/internal/config"
	"gestionhomeclean/internal/dto"
	"gestionhomeclean/internal/model"
	"gestionhomeclean/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req *dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req *dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
}

type authService struct {
	usuarios repository.UsuarioRepository
	cfg      *config.Config
}

func NewAuthService(usuarios repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrCredenciales
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactivo
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Str("username", req.Username).Msg("intento de login fallido")
		return nil, ErrCredenciales
	}
	return s.emitirTokens(usuario)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrCredenciales
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredenciales
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return nil, ErrCredenciales
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrCredenciales
	}

	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCredenciales
	}
	if !usuario.Activo {
		return nil, ErrUsuarioInactivo
	}
	return s.emitirTokens(usuario)
}

func (s *authService) emitirTokens(usuario *model.Usuario) (*dto.LoginResponse, error) {
	ahora := time.Now()
	expiracion := time.Duration(s.cfg.JWTExpirationHours) * time.Hour

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      usuario.ID.String(),
		"username": usuario.Username,
		"rol":      usuario.Rol,
		"type":     "access",
		"iat":      ahora.Unix(),
		"exp":      ahora.Add(expiracion).Unix(),
	})
	accessStr, err := access.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  usuario.ID.String(),
		"type": "refresh",
		"iat":  ahora.Unix(),
		"exp":  ahora.Add(time.Duration(s.cfg.JWTRefreshHours) * time.Hour).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		TokenType:    "bearer",
		ExpiresIn:    int(expiracion.Seconds()),
		User:         usuarioToResponse(usuario),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req *dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		ID:           uuid.New(),
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(usuario)
	return &resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req *dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.Email != nil {
		usuario.Email = req.Email
	}
	if req.Rol != "" {
		usuario.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}

	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(usuario)
	return &resp, nil
}

// DesactivarUsuario disables login without touching audit trails that
// reference the username.
func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNoEncontrado
		}
		return err
	}
	usuario.Activo = false
	return s.usuarios.Update(ctx, usuario)
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	resultado := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		resultado = append(resultado, usuarioToResponse(&usuarios[i]))
	}
	return resultado, nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
