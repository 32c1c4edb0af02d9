// Package store mantiene la copia en memoria autoritativa de las siete
// colecciones del negocio y detecta qué colecciones cambiaron respecto del
// último snapshot persistido.
//
// Ciclo de vida: Hydrating → Ready → Closed. Toda mutación pasa por Mutate
// (comando con nombre en el caso de uso que lo invoca); las lecturas reciben
// copias profundas, nunca referencias al estado vivo.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// Phase fase del store dentro de la sesión del proceso.
type Phase int

const (
	PhaseHydrating Phase = iota
	PhaseReady
	PhaseClosed
)

// Store copia en memoria del estado del negocio.
//
// baseline guarda el JSON de cada colección tal como se persistió por última
// vez; la detección de cambios es igualdad estructural (bytes del JSON), no
// identidad de referencias.
type Store struct {
	mu       sync.RWMutex
	phase    Phase
	state    entity.State
	settings entity.BusinessSettings
	baseline map[string][]byte
	onChange func()
}

// New crea un store vacío en fase Hydrating. Mientras no se hidrate, las
// mutaciones se rechazan: evita pisar el estado del servidor con un estado
// cliente vacío o parcial durante el arranque.
func New() *Store {
	return &Store{phase: PhaseHydrating, baseline: map[string][]byte{}}
}

// SetOnChange registra el callback disparado tras cada mutación confirmada
// (lo consume el Syncer para re-armar su ventana de calma).
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Hydrate instala el estado cargado del backend, normaliza registros
// malformados y toma el baseline. Pasa el store a Ready.
func (s *Store) Hydrate(state *entity.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return domain.ErrConflict
	}
	state.Normalize()
	s.state = *state
	baseline, err := marshalCollections(&s.state)
	if err != nil {
		return fmt.Errorf("hydrate baseline: %w", err)
	}
	s.baseline = baseline
	s.phase = PhaseReady
	return nil
}

// SetSettings instala el singleton de datos del negocio (solo lectura para
// el dominio; se persiste por su propio repositorio).
func (s *Store) SetSettings(b entity.BusinessSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = b
}

// Settings devuelve una copia del singleton de datos del negocio.
func (s *Store) Settings() entity.BusinessSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Phase devuelve la fase actual.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Ready indica si el store ya se hidrató y acepta mutaciones.
func (s *Store) Ready() bool { return s.Phase() == PhaseReady }

// Close marca el store como cerrado (apagado del proceso).
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseClosed
}

// Snapshot devuelve una copia profunda del estado completo. Los lectores
// pueden retenerla y recorrerla sin lock.
func (s *Store) Snapshot() (entity.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(&s.state)
}

// UserByID devuelve una copia del usuario vivo, sin clonar el estado
// completo. Lo usa el middleware de auth en cada petición.
func (s *Store) UserByID(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			u := s.state.Users[i]
			u.Permissions = append([]string(nil), u.Permissions...)
			return u, true
		}
	}
	return entity.User{}, false
}

// Mutate ejecuta un comando de mutación bajo el lock del store. Si fn
// devuelve error el comando se considera abortado (fn no debe dejar cambios
// parciales). Tras un commit se notifica al syncer.
func (s *Store) Mutate(fn func(st *entity.State) error) error {
	s.mu.Lock()
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return domain.ErrStoreNotHydrated
	}
	err := fn(&s.state)
	notify := s.onChange
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if notify != nil {
		notify()
	}
	return nil
}

// ChangedCollections compara cada colección (por igualdad estructural JSON)
// contra el baseline y devuelve los nombres de las que cambiaron.
func (s *Store) ChangedCollections() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, err := marshalCollections(&s.state)
	if err != nil {
		return nil, err
	}
	var changed []string
	for _, name := range entity.CollectionNames {
		if string(current[name]) != string(s.baseline[name]) {
			changed = append(changed, name)
		}
	}
	return changed, nil
}

// MarkSaved actualiza el baseline a los valores recién persistidos.
func (s *Store) MarkSaved(saved *entity.State) error {
	baseline, err := marshalCollections(saved)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = baseline
	return nil
}

// cloneState copia profunda vía JSON: mismo mecanismo con el que se
// comparan y persisten las colecciones, así la copia nunca diverge del
// formato de wire.
func cloneState(src *entity.State) (entity.State, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return entity.State{}, fmt.Errorf("clone state: %w", err)
	}
	var dst entity.State
	if err := json.Unmarshal(raw, &dst); err != nil {
		return entity.State{}, fmt.Errorf("clone state: %w", err)
	}
	dst.Normalize()
	// PasswordHash no viaja por JSON (json:"-"); restaurarlo en la copia.
	hashes := make(map[string]string, len(src.Users))
	for _, u := range src.Users {
		hashes[u.ID] = u.PasswordHash
	}
	for i := range dst.Users {
		dst.Users[i].PasswordHash = hashes[dst.Users[i].ID]
	}
	return dst, nil
}

// marshalCollections serializa cada colección por separado para la
// detección de cambios.
func marshalCollections(s *entity.State) (map[string][]byte, error) {
	out := make(map[string][]byte, 7)
	for name, v := range map[string]any{
		"users":          s.Users,
		"customers":      s.Customers,
		"orders":         s.Orders,
		"expenses":       s.Expenses,
		"workers":        s.Workers,
		"workerPayments": s.WorkerPayments,
		"accounts":       s.Accounts,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}
