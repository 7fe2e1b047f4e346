package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"pokecontact/internal/domain"
	"pokecontact/internal/repository"
	"pokecontact/internal/store"
)

// AssociationsKey es la clave unica bajo la que se persiste el documento
// completo de asociaciones. Se preserva el nombre historico del cliente
// movil para compartir datos con instalaciones existentes.
const AssociationsKey = "@pokecontact:contactPokemonMap"

// AssociationService mantiene el mapeo contacto -> (pokemon, stats
// personalizados) serializado como un unico documento JSON en el KVStore,
// y lo fusiona en lectura con el listado de contactos.
type AssociationService struct {
	kv       store.KVStore
	contacts repository.ContactRepository
	logger   *zap.Logger

	// Serializa el ciclo leer-modificar-escribir del documento.
	mu sync.Mutex
}

func NewAssociationService(kv store.KVStore, contacts repository.ContactRepository, logger *zap.Logger) *AssociationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssociationService{kv: kv, contacts: contacts, logger: logger}
}

// Save crea o reemplaza la asociacion de un contacto. Si customStats es
// nil se deriva el triple por defecto desde attack/defense/speed del perfil.
func (s *AssociationService) Save(ctx context.Context, contactID string, pokemon domain.Pokemon, customStats *domain.CustomStats) error {
	cs := domain.DefaultCustomStats(pokemon.Stats)
	if customStats != nil {
		cs = *customStats
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMap(ctx)
	if err != nil {
		return err
	}
	m[contactID] = domain.Association{Pokemon: pokemon, CustomStats: cs}
	return s.saveMap(ctx, m)
}

// Get devuelve la asociacion de un contacto, con false si no existe.
func (s *AssociationService) Get(ctx context.Context, contactID string) (domain.Association, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMap(ctx)
	if err != nil {
		return domain.Association{}, false, err
	}
	a, ok := m[contactID]
	return a, ok, nil
}

// Remove elimina la asociacion de un contacto. Remover una asociacion
// inexistente no es un error.
func (s *AssociationService) Remove(ctx context.Context, contactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMap(ctx)
	if err != nil {
		return err
	}
	if _, ok := m[contactID]; !ok {
		return nil
	}
	delete(m, contactID)
	return s.saveMap(ctx, m)
}

// RemoveMany elimina contactos y sus asociaciones a mejor esfuerzo: todos
// los ids se intentan aunque alguno falle, y el resultado reporta el
// desenlace por id (nil en exito).
func (s *AssociationService) RemoveMany(ctx context.Context, contactIDs []string) map[string]error {
	outcomes := make(map[string]error, len(contactIDs))
	for _, id := range contactIDs {
		// Un contacto ya ausente no impide limpiar su asociacion huerfana.
		if err := s.contacts.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrContactNotFound) {
			outcomes[id] = err
			continue
		}
		outcomes[id] = s.Remove(ctx, id)
	}
	for id, err := range outcomes {
		if err != nil {
			s.logger.Warn("batch delete entry failed", zap.String("contact_id", id), zap.Error(err))
		}
	}
	return outcomes
}

// ListWithPokemon une el listado de contactos con las asociaciones por id.
// Los contactos sin asociacion quedan fuera. Cualquier falla de lectura
// degrada a lista vacia para mantener renderizable al consumidor.
func (s *AssociationService) ListWithPokemon(ctx context.Context) []domain.ContactWithPokemon {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		s.logger.Warn("contact listing failed", zap.Error(err))
		return []domain.ContactWithPokemon{}
	}

	s.mu.Lock()
	m, err := s.loadMap(ctx)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("association read failed", zap.Error(err))
		return []domain.ContactWithPokemon{}
	}

	merged := make([]domain.ContactWithPokemon, 0, len(m))
	for _, c := range contacts {
		a, ok := m[c.ID]
		if !ok {
			continue
		}
		merged = append(merged, mergeContact(c, a))
	}
	return merged
}

// mergeContact arma el registro fusionado: los stats de visualizacion
// superponen attack/defense/speed con los personalizados, mientras hp y
// los especiales salen del perfil guardado (o 50).
func mergeContact(c domain.Contact, a domain.Association) domain.ContactWithPokemon {
	cs := a.CustomStats
	if cs == (domain.CustomStats{}) {
		cs = domain.DefaultCustomStats(a.Stats)
	}

	display := domain.Stats{
		HP:             statOr50(a.Stats.HP),
		Attack:         cs.ResponseTime,
		Defense:        cs.ConfidenceLevel,
		Speed:          cs.MessageSpeed,
		SpecialAttack:  statOr50(a.Stats.SpecialAttack),
		SpecialDefense: statOr50(a.Stats.SpecialDefense),
	}

	pokemon := a.Pokemon
	pokemon.Stats = display

	return domain.ContactWithPokemon{
		ID:          c.ID,
		Name:        resolveDisplayName(c),
		PhoneNumber: c.Phone,
		Pokemon:     pokemon,
		PokemonID:   a.ID,
		PokemonName: a.Name,
		Sprite:      a.Sprite,
		Types:       a.Types,
		Stats:       display,
		CustomStats: cs,
	}
}

// resolveDisplayName aplica la precedencia de nombres: nombre explicito no
// vacio y distinto del telefono, luego nombre+apellido, y por ultimo
// "Unknown Contact". Un nombre resuelto igual al telefono tambien cae al
// fallback.
func resolveDisplayName(c domain.Contact) string {
	phone := c.Phone
	name := ""
	if trimmed := strings.TrimSpace(c.Name); trimmed != "" && trimmed != phone {
		name = trimmed
	} else if c.FirstName != "" || c.LastName != "" {
		name = strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	}
	if name == "" || name == phone {
		return "Unknown Contact"
	}
	return name
}

func statOr50(v int) int {
	if v <= 0 {
		return 50
	}
	return v
}

func (s *AssociationService) loadMap(ctx context.Context) (map[string]domain.Association, error) {
	raw, ok, err := s.kv.Get(ctx, AssociationsKey)
	if err != nil {
		return nil, &domain.AssociationStoreError{Op: "read", Err: err}
	}
	if !ok || raw == "" {
		return make(map[string]domain.Association), nil
	}
	var m map[string]domain.Association
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, &domain.AssociationStoreError{Op: "decode", Err: err}
	}
	if m == nil {
		m = make(map[string]domain.Association)
	}
	return m, nil
}

func (s *AssociationService) saveMap(ctx context.Context, m map[string]domain.Association) error {
	data, err := json.Marshal(m)
	if err != nil {
		return &domain.AssociationStoreError{Op: "encode", Err: err}
	}
	if err := s.kv.Set(ctx, AssociationsKey, string(data)); err != nil {
		return &domain.AssociationStoreError{Op: "write", Err: err}
	}
	return nil
}
