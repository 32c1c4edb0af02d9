package store

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/tailor-pro/internal/domain/repository"
	"github.com/tu-usuario/tailor-pro/pkg/logger"
)

// saveTimeout tope para una petición de guardado al backend.
const saveTimeout = 30 * time.Second

// Syncer persiste el estado con debounce: cada mutación re-arma la ventana
// de calma; al expirar, si alguna colección cambió respecto del baseline, se
// envían las SIETE en una sola petición atómica (el protocolo manda siempre
// el estado completo para mantener simple la capa de persistencia).
//
// Un guardado fallido se reporta y NO se reintenta solo: la próxima mutación
// arranca el siguiente ciclo. Guardados solapados pueden competir; la última
// respuesta en llegar fija LastSaved y el servidor es la fuente de verdad en
// la próxima recarga.
type Syncer struct {
	store  *Store
	repo   repository.StateRepository
	log    *logger.Logger
	window time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	stopped   bool
	saving    bool
	lastSaved *time.Time
	lastErr   error
}

// NewSyncer construye el syncer y lo registra como onChange del store.
func NewSyncer(st *Store, repo repository.StateRepository, log *logger.Logger, window time.Duration) *Syncer {
	s := &Syncer{store: st, repo: repo, log: log, window: window}
	st.SetOnChange(s.Notify)
	return s
}

// Notify (re)arma la ventana de calma. Un guardado pendiente aún no
// disparado queda superseded por el nuevo timer.
func (s *Syncer) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

func (s *Syncer) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_ = s.Flush(ctx)
}

// Flush persiste ahora si hay cambios pendientes. Lo usa el timer, el
// apagado del proceso y los tests. Sin cambios no toca el backend.
func (s *Syncer) Flush(ctx context.Context) error {
	if !s.store.Ready() {
		// Durante la hidratación la persistencia está suprimida.
		return nil
	}
	changed, err := s.store.ChangedCollections()
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		return err
	}

	s.setSaving(true)
	defer s.setSaving(false)

	start := time.Now()
	if err := s.repo.SaveAll(ctx, &snap); err != nil {
		s.log.Error().Err(err).Strs("changed", changed).Msg("guardado de estado falló")
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	if err := s.store.MarkSaved(&snap); err != nil {
		return err
	}
	now := time.Now()
	s.mu.Lock()
	s.lastSaved = &now
	s.lastErr = nil
	s.mu.Unlock()
	s.log.Debug().
		Strs("changed", changed).
		Dur("elapsed", time.Since(start)).
		Msg("estado persistido")
	return nil
}

// Stop detiene el timer pendiente (apagado del proceso).
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Syncer) setSaving(v bool) {
	s.mu.Lock()
	s.saving = v
	s.mu.Unlock()
}

// Saving indica si hay un guardado en curso.
func (s *Syncer) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// LastSaved timestamp del último guardado exitoso (nil si nunca guardó).
func (s *Syncer) LastSaved() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// LastError último error de persistencia no resuelto (nil tras un guardado
// exitoso).
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
