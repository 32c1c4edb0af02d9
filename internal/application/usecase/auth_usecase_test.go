package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// stubPasswordRepo captura las escrituras de hash fuera del ciclo de snapshot.
type stubPasswordRepo struct {
	updates map[string]string
}

func (r *stubPasswordRepo) LoadAll(context.Context) (*entity.State, error)      { return nil, nil }
func (r *stubPasswordRepo) SaveAll(context.Context, *entity.State) error        { return nil }
func (r *stubPasswordRepo) UpdatePassword(_ context.Context, id, hash string) error {
	if r.updates == nil {
		r.updates = map[string]string{}
	}
	r.updates[id] = hash
	return nil
}

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func authFixture(t *testing.T) (entity.State, *stubPasswordRepo) {
	t.Helper()
	return entity.State{
		Users: []entity.User{
			{ID: "U1", Username: "owner", PasswordHash: hashOf(t, "secret1"), Name: "Owner", Role: entity.RoleAdmin, Active: true},
			{ID: "U2", Username: "sara", PasswordHash: hashOf(t, "staff123"), Name: "Sara", Role: entity.RoleStaff, Active: false},
		},
	}, &stubPasswordRepo{}
}

func newAuth(t *testing.T, st entity.State, repo *stubPasswordRepo) *usecase.AuthUseCase {
	t.Helper()
	return usecase.NewAuthUseCase(newStore(t, st), repo, "test-secret", "tailor-pro", 60)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	resp, err := uc.Login(dto.LoginRequest{Username: "OWNER", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "U1", resp.User.ID)
	require.NotNil(t, resp.User.LastLogin)
	assert.WithinDuration(t, time.Now(), *resp.User.LastLogin, 5*time.Second)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	_, err := uc.Login(dto.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDesconocido(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Cuenta desactivada: la contraseña correcta no basta.
func TestLogin_CuentaDesactivada(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	_, err := uc.Login(dto.LoginRequest{Username: "sara", Password: "staff123"})
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

// ──────────────────────────────────────────────────────────────────────────────
// Current
// ──────────────────────────────────────────────────────────────────────────────

// Los permisos efectivos de un Admin sin lista explícita son todos.
func TestCurrent_PermisosEfectivos(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	resp, perms, err := uc.Current("U1")
	require.NoError(t, err)
	assert.Equal(t, "owner", resp.Username)
	assert.Contains(t, perms, "manage_users")
	assert.Contains(t, perms, "view_all_orders")
}

func TestCurrent_Inexistente(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)

	_, _, err := uc.Current("nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

// El cambio propio exige la contraseña actual y persiste el hash por el
// camino dedicado (fuera del snapshot de colecciones).
func TestChangePassword_Propia(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)
	actor := st.Users[0]

	err := uc.ChangePassword(context.Background(), &actor, dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "nuevaclave",
	})
	require.NoError(t, err)
	require.Contains(t, repo.updates, "U1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updates["U1"]), []byte("nuevaclave")))
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)
	actor := st.Users[0]

	err := uc.ChangePassword(context.Background(), &actor, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "nuevaclave",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
	assert.Empty(t, repo.updates)
}

func TestChangePassword_Corta(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)
	actor := st.Users[0]

	err := uc.ChangePassword(context.Background(), &actor, dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "abc",
	})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

// Un admin resetea la contraseña de otra cuenta sin conocer la actual.
func TestChangePassword_ResetPorAdmin(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)
	admin := st.Users[0]

	err := uc.ChangePassword(context.Background(), &admin, dto.ChangePasswordRequest{
		UserID:      "U2",
		NewPassword: "resetea1",
	})
	require.NoError(t, err)
	assert.Contains(t, repo.updates, "U2")
}

// Sin manage_users no se puede resetear a terceros.
func TestChangePassword_ResetSinPermiso(t *testing.T) {
	st, repo := authFixture(t)
	uc := newAuth(t, st, repo)
	staff := st.Users[1]

	err := uc.ChangePassword(context.Background(), &staff, dto.ChangePasswordRequest{
		UserID:      "U1",
		NewPassword: "resetea1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
