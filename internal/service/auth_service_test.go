package service

import (
	"context"
	"testing"
	"time"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/repository"
	"github.com/kleberrossi/procman/internal/testutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.Issuer = "procman"
	cfg.JWT.AccessTokenExpire = 2 * time.Hour
	cfg.JWT.RefreshTokenExpire = 168 * time.Hour
	return NewAuthService(repos.User, nil, cfg)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterRequest{
		Nome:  "Maria",
		Email: "Maria@Empresa.com",
		Senha: "segredo1",
		Papel: entity.RolePCP,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "maria@empresa.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.SenhaHash == "segredo1" {
		t.Fatalf("password must not be stored in clear")
	}

	got, pair, err := svc.Login(ctx, "maria@empresa.com", "segredo1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("logged user id = %d, want %d", got.ID, user.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("token pair incomplete: %+v", pair)
	}

	if _, _, err := svc.Login(ctx, "maria@empresa.com", "errada"); err != ErrInvalidCredential {
		t.Fatalf("wrong password must fail with ErrInvalidCredential, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ninguem@empresa.com", "segredo1"); err != ErrInvalidCredential {
		t.Fatalf("unknown email must fail with ErrInvalidCredential, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Nome: "X", Email: "sem-arroba", Senha: "segredo1"}); err == nil {
		t.Fatalf("invalid email must fail")
	}
	if _, err := svc.Register(ctx, &RegisterRequest{Nome: "X", Email: "x@y.com", Senha: "curta"}); err == nil {
		t.Fatalf("short password must fail")
	}
	if _, err := svc.Register(ctx, &RegisterRequest{Nome: "X", Email: "x@y.com", Senha: "segredo1", Papel: "gerente"}); err == nil {
		t.Fatalf("unknown role must fail")
	}

	if _, err := svc.Register(ctx, &RegisterRequest{Nome: "X", Email: "dup@y.com", Senha: "segredo1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, &RegisterRequest{Nome: "Y", Email: "dup@y.com", Senha: "segredo2"}); err != ErrDuplicateCode {
		t.Fatalf("duplicate email must fail with ErrDuplicateCode, got %v", err)
	}
}

func TestAuthRefreshRotatesPair(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{
		Nome: "Op", Email: "op@y.com", Senha: "segredo1", Papel: entity.RoleOperator,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, pair, err := svc.Login(ctx, "op@y.com", "segredo1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	renewed, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if renewed.AccessToken == "" {
		t.Fatalf("renewed pair incomplete")
	}

	if _, err := svc.Refresh(ctx, pair.AccessToken); err != ErrInvalidCredential {
		t.Fatalf("access token must not pass as refresh, got %v", err)
	}
	if _, err := svc.Refresh(ctx, "nem-token"); err != ErrInvalidCredential {
		t.Fatalf("garbage must fail with ErrInvalidCredential, got %v", err)
	}
}

func TestEnsureAdminOnlyOnEmptyTable(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "root@y.com", "segredo1"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	user, _, err := svc.Login(ctx, "root@y.com", "segredo1")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if user.Papel != entity.RoleAdmin {
		t.Fatalf("papel = %q", user.Papel)
	}

	// segunda subida não cria outra conta
	if err := svc.EnsureAdmin(ctx, "outro@y.com", "segredo2"); err != nil {
		t.Fatalf("EnsureAdmin second run: %v", err)
	}
	if _, _, err := svc.Login(ctx, "outro@y.com", "segredo2"); err != ErrInvalidCredential {
		t.Fatalf("second admin must not exist, got %v", err)
	}
}
