package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pokecontact/internal/compat"
	"pokecontact/internal/domain"
)

// MatchService calcula el ranking de "mejores matches" de un contacto
// contra el resto de los contactos asociados, en lotes cooperativos para
// no bloquear al consumidor durante colecciones grandes.
type MatchService struct {
	associations *AssociationService
	logger       *zap.Logger
}

func NewMatchService(associations *AssociationService, logger *zap.Logger) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchService{associations: associations, logger: logger}
}

// BestMatches devuelve los contactos cuya compatibilidad con la referencia
// alcanza el umbral, ordenados de mayor a menor. Las opciones en cero usan
// umbral 60 y lotes de 10. La cancelacion del contexto corta en la proxima
// frontera de lote sin entregar resultados.
func (s *MatchService) BestMatches(ctx context.Context, contactID string, opts compat.Options) ([]domain.Match, error) {
	merged := s.associations.ListWithPokemon(ctx)

	var ref *domain.Pokemon
	candidates := make([]domain.ContactWithPokemon, 0, len(merged))
	for _, c := range merged {
		if c.ID == contactID {
			p := c.Pokemon
			ref = &p
			continue
		}
		candidates = append(candidates, c)
	}
	if ref == nil {
		return nil, fmt.Errorf("contact %s has no pokemon association", contactID)
	}

	ranking := compat.NewRanking(ref, candidates, opts)
	matches, err := ranking.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("best matches computed",
		zap.String("contact_id", contactID),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// Compare puntua dos contactos asociados entre si. El segundo retorno es
// false cuando alguno de los dos no tiene asociacion (puntaje "no aplica").
func (s *MatchService) Compare(ctx context.Context, contactA, contactB string) (int, bool) {
	var a, b *domain.Pokemon
	for _, c := range s.associations.ListWithPokemon(ctx) {
		switch c.ID {
		case contactA:
			p := c.Pokemon
			a = &p
		case contactB:
			p := c.Pokemon
			b = &p
		}
	}
	return compat.Score(a, b)
}
