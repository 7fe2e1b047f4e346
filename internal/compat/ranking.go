package compat

import (
	"context"
	"sort"

	"pokecontact/internal/domain"
)

// Valores por defecto del ranking incremental.
const (
	DefaultThreshold = 60
	DefaultBatchSize = 10
)

// Options controla el umbral de corte y el tamano de lote del ranking.
type Options struct {
	Threshold int
	BatchSize int
}

// Ranking computa compatibilidades entre un perfil de referencia y una
// coleccion de candidatos en lotes de tamano fijo, para no monopolizar el
// hilo que lo consume. Cada llamada a Step procesa exactamente un lote;
// Run itera hasta terminar cediendo en cada frontera de lote y respetando
// la cancelacion del contexto.
type Ranking struct {
	ref        *domain.Pokemon
	candidates []domain.ContactWithPokemon
	opts       Options
	next       int
	matches    []domain.Match
}

// NewRanking prepara un ranking sin computar nada todavia. Las opciones en
// cero toman los valores por defecto (umbral 60, lotes de 10).
func NewRanking(ref *domain.Pokemon, candidates []domain.ContactWithPokemon, opts Options) *Ranking {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Ranking{ref: ref, candidates: candidates, opts: opts}
}

// Step procesa el siguiente lote de candidatos y devuelve true mientras
// quede trabajo pendiente.
func (r *Ranking) Step() bool {
	if r.next >= len(r.candidates) {
		return false
	}
	end := r.next + r.opts.BatchSize
	if end > len(r.candidates) {
		end = len(r.candidates)
	}
	for _, c := range r.candidates[r.next:end] {
		pokemon := c.Pokemon
		score, ok := Score(r.ref, &pokemon)
		if ok && score >= r.opts.Threshold {
			r.matches = append(r.matches, domain.Match{Contact: c, Compatibility: score})
		}
	}
	r.next = end
	return r.next < len(r.candidates)
}

// Done informa si ya no quedan lotes por procesar.
func (r *Ranking) Done() bool {
	return r.next >= len(r.candidates)
}

// Results ordena y devuelve los candidatos calificados. Solo tiene sentido
// una vez que Done es true; el orden es descendente por puntaje y estable
// sobre el orden de insercion para empates.
func (r *Ranking) Results() []domain.Match {
	sort.SliceStable(r.matches, func(i, j int) bool {
		return r.matches[i].Compatibility > r.matches[j].Compatibility
	})
	return r.matches
}

// Run procesa todos los lotes verificando cancelacion entre uno y otro.
// Tras una cancelacion no se entrega ningun resultado, ni siquiera parcial.
func (r *Ranking) Run(ctx context.Context) ([]domain.Match, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.Step() {
			break
		}
	}
	return r.Results(), nil
}
