package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
)

var userRoles = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RolePCP:      true,
	entity.RoleOperator: true,
	entity.RoleQuality:  true,
	entity.RoleReader:   true,
}

// AuthService autentica usuários com bcrypt e emite pares de token JWT.
// Refresh tokens ficam registrados no Redis até expirar ou serem usados.
type AuthService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, rdb: rdb, cfg: cfg}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
	Papel string `json:"papel"`
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalidField("email", "inválido")
	}
	if len(req.Senha) < 6 {
		return nil, invalidField("senha", "mínimo de 6 caracteres")
	}
	papel := req.Papel
	if papel == "" {
		papel = entity.RoleReader
	}
	if !userRoles[papel] {
		return nil, invalidField("papel", "papel desconhecido")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Nome:      strings.TrimSpace(req.Nome),
		Email:     email,
		SenhaHash: string(hash),
		Papel:     papel,
		Ativo:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, senha string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, ErrInvalidCredential
		}
		return nil, nil, err
	}
	if !user.Ativo {
		return nil, nil, ErrInactiveUser
	}
	if bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(senha)) != nil {
		return nil, nil, ErrInvalidCredential
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}
	return user, pair, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":   user.ID,
		"uid":   user.ID,
		"name":  user.Nome,
		"email": user.Email,
		"papel": user.Papel,
		"iss":   s.cfg.JWT.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":   uuid.New().String(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, "token:refresh:"+refreshJti, user.ID, s.cfg.JWT.RefreshTokenExpire)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

// Refresh troca um refresh token válido por um novo par. O jti usado é
// consumido no Redis, tokens antigos não servem duas vezes.
func (s *AuthService) Refresh(ctx context.Context, refreshTokenString string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return nil, ErrInvalidCredential
	}
	jti, _ := claims["jti"].(string)

	if s.rdb != nil {
		key := "token:refresh:" + jti
		if _, err := s.rdb.Get(ctx, key).Result(); err != nil {
			return nil, ErrInvalidCredential
		}
		s.rdb.Del(ctx, key)
	}

	sub, _ := claims["sub"].(float64)
	user, err := s.userRepo.FindByID(ctx, uint(sub))
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if !user.Ativo {
		return nil, ErrInactiveUser
	}
	return s.generateTokenPair(ctx, user)
}

// EnsureAdmin cria a conta administrativa inicial quando a tabela de
// usuários está vazia. Subidas seguintes não fazem nada.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, senha string) error {
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.Register(ctx, &RegisterRequest{
		Nome:  "Administrador",
		Email: email,
		Senha: senha,
		Papel: entity.RoleAdmin,
	})
	return err
}
