package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/habitus/forecast-api/infrastructure/repository/mocks"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{
		SecretKey: testSecret,
		Auth: config.Auth{
			TokenTTL:      time.Hour,
			AdminEmail:    "Admin@Habitus.com",
			AdminPassword: "Admin123",
		},
	}

	return NewService(repo, cfg).(*Service), repo
}

func hashed(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_CreateUser(t *testing.T) {
	tests := []struct {
		name     string
		user     domain.User
		setup    func(repo *mocks.MockUserRepository)
		wantErr  error
		wantCode string
	}{
		{
			name: "Cadastro válido",
			user: domain.User{Name: "Ana", Lastname: "Souza", Email: " Ana@Empresa.com ", PasswordHash: "Senha123"},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@empresa.com").Return(nil, nil)
				repo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Senha123")))
					assert.True(t, u.Active)
					assert.Equal(t, domain.RoleUser, u.RoleID)
					u.ID = 10
					return u, nil
				})
			},
		},
		{
			name:     "Campos obrigatórios ausentes",
			user:     domain.User{Email: "ana@empresa.com"},
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Senha fraca",
			user:     domain.User{Name: "Ana", Lastname: "Souza", Email: "ana@empresa.com", PasswordHash: "senha"},
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrWeakPassword,
			wantCode: apiErrors.ErrInvalidFormat,
		},
		{
			name: "Email já cadastrado",
			user: domain.User{Name: "Ana", Lastname: "Souza", Email: "ana@empresa.com", PasswordHash: "Senha123"},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@empresa.com").Return(&domain.User{ID: 3}, nil)
			},
			wantErr:  ErrUserAlreadyExists,
			wantCode: apiErrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			user := tt.user
			created, err := service.CreateUser(&user)

			if tt.wantErr != nil {
				assert.Nil(t, created)
				assert.True(t, errors.Is(err, tt.wantErr), "erro inesperado: %v", err)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 10, created.ID)
			assert.Equal(t, "ana@empresa.com", created.Email)
			assert.Empty(t, created.PasswordHash)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	active := &domain.User{ID: 4, Name: "Ana", Email: "ana@empresa.com", Active: true, RoleID: domain.RoleUser}
	disabled := &domain.User{ID: 5, Email: "inativo@empresa.com", Active: false}

	tests := []struct {
		name     string
		email    string
		password string
		stored   *domain.User
		wantErr  error
	}{
		{name: "Credenciais corretas", email: "ANA@empresa.com", password: "Senha123", stored: active},
		{name: "Senha incorreta", email: "ana@empresa.com", password: "Errada123", stored: active, wantErr: ErrInvalidCredentials},
		{name: "Usuário inexistente", email: "nada@empresa.com", password: "Senha123", stored: nil, wantErr: ErrInvalidCredentials},
		{name: "Usuário desativado", email: "inativo@empresa.com", password: "Senha123", stored: disabled, wantErr: ErrUserDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)

			var stored *domain.User
			if tt.stored != nil {
				copied := *tt.stored
				copied.PasswordHash = hashed(t, "Senha123")
				stored = &copied
			}
			repo.EXPECT().GetUserByEmail(gomock.Any()).Return(stored, nil)

			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Empty(t, token)
				assert.True(t, errors.Is(err, tt.wantErr), "erro inesperado: %v", err)
				assert.True(t, IsCredentialsError(err))
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 4, claims.UserID)
			assert.Equal(t, "ana@empresa.com", claims.UserEmail)
			assert.False(t, claims.IsAdmin())
		})
	}

	t.Run("Campos vazios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser("", "")
		assert.True(t, errors.Is(err, ErrMissingRequiredData))
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)
	user := &domain.User{ID: 1, Email: "admin@habitus.com", Active: true, RoleID: domain.RoleAdmin}

	t.Run("Token válido", func(t *testing.T) {
		token, err := service.generateJWT(user)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("Token expirado", func(t *testing.T) {
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { service.now = time.Now }()

		token, err := service.generateJWT(user)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrExpiredToken))
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Assinatura de outro segredo", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin})
		token, err := forged.SignedString([]byte("outro-segredo"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, apiErrors.ErrInvalidToken, authErr.Code)
	})
}

func TestService_GetUserProfile(t *testing.T) {
	service, repo := newTestService(t)

	repo.EXPECT().GetUserByID(4).Return(&domain.User{ID: 4, PasswordHash: "hash"}, nil)
	repo.EXPECT().GetUserByID(9).Return(nil, nil)

	user, err := service.GetUserProfile(4)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(9)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("Cria administrador ausente", func(t *testing.T) {
		service, repo := newTestService(t)

		repo.EXPECT().GetUserByEmail("admin@habitus.com").Return(nil, nil)
		repo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
			assert.Equal(t, domain.RoleAdmin, u.RoleID)
			assert.True(t, u.Active)
			u.ID = 1
			return u, nil
		})

		assert.NoError(t, service.EnsureAdmin())
	})

	t.Run("Administrador existente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail("admin@habitus.com").Return(&domain.User{ID: 1}, nil)

		assert.NoError(t, service.EnsureAdmin())
	})

	t.Run("Sem senha configurada", func(t *testing.T) {
		service, _ := newTestService(t)
		service.cfg.Auth.AdminPassword = ""

		assert.NoError(t, service.EnsureAdmin())
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	assert.NoError(t, service.ValidatePasswordStrength("Senha123"))
	assert.Error(t, service.ValidatePasswordStrength("Curta1"))
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula1"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA1"))
	assert.Error(t, service.ValidatePasswordStrength("SemNumero"))
}
