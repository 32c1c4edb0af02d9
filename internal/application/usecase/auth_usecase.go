package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	"github.com/tu-usuario/tailor-pro/internal/domain/repository"
	"github.com/tu-usuario/tailor-pro/pkg/jwt"
)

// AuthUseCase login, sesión y cambio de contraseña.
//
// Los hashes de contraseña viven en el store pero no viajan en el payload de
// colecciones, así que el cambio de contraseña se persiste por su propio
// camino (repo.UpdatePassword) además de actualizar el estado en memoria.
type AuthUseCase struct {
	store      *store.Store
	repo       repository.StateRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(st *store.Store, repo repository.StateRepository, secret, issuer string, expMinutes int) *AuthUseCase {
	return &AuthUseCase{store: st, repo: repo, jwtSecret: secret, jwtIssuer: issuer, expMinutes: expMinutes}
}

// Login valida credenciales contra el store y emite un token. El username se
// compara sin distinguir mayúsculas. Una cuenta desactivada no puede entrar
// aunque la contraseña sea correcta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	var matched *entity.User
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	for i := range snap.Users {
		if strings.EqualFold(snap.Users[i].Username, in.Username) {
			matched = &snap.Users[i]
			break
		}
	}
	if matched == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(matched.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !matched.Active {
		return nil, domain.ErrInactiveUser
	}

	now := time.Now()
	userID := matched.ID
	_ = uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Users {
			if st.Users[i].ID == userID {
				st.Users[i].LastLogin = &now
				return nil
			}
		}
		return nil
	})
	matched.LastLogin = &now

	token, err := jwt.Generate(uc.jwtSecret, matched.ID, matched.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.UserFromEntity(*matched)}, nil
}

// Current devuelve el usuario vivo del store junto con sus permisos
// efectivos ya resueltos (lista explícita o fallback por rol).
func (uc *AuthUseCase) Current(userID string) (*dto.UserResponse, []string, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	for i := range snap.Users {
		if snap.Users[i].ID == userID {
			u := snap.Users[i]
			resp := dto.UserFromEntity(u)
			eff := permission.Effective(&u)
			tags := make([]string, 0, len(eff))
			for _, t := range permission.All {
				if eff.Contains(t) {
					tags = append(tags, string(t))
				}
			}
			return &resp, tags, nil
		}
	}
	return nil, nil, domain.ErrUserNotFound
}

// ChangePassword cambia la contraseña propia (exige la actual) o, si el
// solicitante administra usuarios, resetea la de otra cuenta sin pedirla.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor *entity.User, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 6 {
		return domain.ErrWeakPassword
	}

	targetID := in.UserID
	if targetID == "" || targetID == actor.ID {
		targetID = actor.ID
		if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return domain.ErrWrongPassword
		}
	} else if !permission.Has(actor, permission.ManageUsers) {
		return domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	found := false
	err = uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Users {
			if st.Users[i].ID == targetID {
				st.Users[i].PasswordHash = string(hash)
				found = true
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return uc.repo.UpdatePassword(ctx, targetID, string(hash))
}
