package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
)

// UserUseCase administración de cuentas de acceso.
type UserUseCase struct {
	store *store.Store
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(st *store.Store) *UserUseCase {
	return &UserUseCase{store: st}
}

// Create da de alta una cuenta. Permissions vacío deja al usuario con el
// fallback de su rol; una lista explícita manda sobre el rol.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if len(in.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Permissions:  in.Permissions,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if u.Permissions == nil {
		u.Permissions = []string{}
	}
	err = uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Users {
			if strings.EqualFold(st.Users[i].Username, in.Username) {
				return domain.ErrUsernameTaken
			}
		}
		st.Users = append(st.Users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(u)
	return &resp, nil
}

// List devuelve todas las cuentas (sin hashes).
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(snap.Users))
	for _, u := range snap.Users {
		out = append(out, dto.UserFromEntity(u))
	}
	return out, nil
}

// Update edita una cuenta. Desactivar o recortar permisos surte efecto en la
// siguiente petición del afectado: el middleware resuelve contra el usuario
// vivo del store, no contra el token.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var updated entity.User
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Users {
			if st.Users[i].ID != id {
				continue
			}
			if in.Username != nil {
				for j := range st.Users {
					if j != i && strings.EqualFold(st.Users[j].Username, *in.Username) {
						return domain.ErrUsernameTaken
					}
				}
				st.Users[i].Username = *in.Username
			}
			if in.Name != nil {
				st.Users[i].Name = *in.Name
			}
			if in.Role != nil {
				st.Users[i].Role = *in.Role
			}
			if in.Permissions != nil {
				st.Users[i].Permissions = in.Permissions
			}
			if in.Active != nil {
				st.Users[i].Active = *in.Active
			}
			updated = st.Users[i]
			return nil
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(updated)
	return &resp, nil
}

// Delete elimina una cuenta. Autoborrado permitido: el token del eliminado
// queda huérfano y el middleware lo rechaza en la siguiente petición.
func (uc *UserUseCase) Delete(id string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users = append(st.Users[:i], st.Users[i+1:]...)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

// RoleDefaults expone los permisos por defecto de cada rol conocido, para
// el formulario de gestión de usuarios.
func (uc *UserUseCase) RoleDefaults() map[string][]string {
	return map[string][]string{
		entity.RoleAdmin:   permission.Strings(permission.RoleDefaults(entity.RoleAdmin)),
		entity.RoleManager: permission.Strings(permission.RoleDefaults(entity.RoleManager)),
		entity.RoleStaff:   permission.Strings(permission.RoleDefaults(entity.RoleStaff)),
	}
}
