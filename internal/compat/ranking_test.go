package compat

import (
	"context"
	"fmt"
	"testing"

	"pokecontact/internal/domain"
)

func candidates(types ...string) []domain.ContactWithPokemon {
	out := make([]domain.ContactWithPokemon, 0, len(types))
	for i, tp := range types {
		out = append(out, domain.ContactWithPokemon{
			ID:      fmt.Sprintf("contact-%d", i),
			Pokemon: domain.Pokemon{ID: i + 1, Types: []string{tp}},
		})
	}
	return out
}

func TestRankingThresholdAndOrdering(t *testing.T) {
	// Referencia fire contra 25 candidatos; exactamente 7 puntuan >= 60:
	// ground (75) y grass/ice/bug/steel/water/rock (63 cada uno).
	cands := candidates(
		"grass", "fire", "normal", "ice", "dragon",
		"bug", "fairy", "poison", "steel", "electric",
		"water", "psychic", "flying", "rock", "dark",
		"ground", "ghost", "fighting", "normal", "fire",
		"electric", "psychic", "dark", "flying", "poison",
	)
	r := NewRanking(mon("fire"), cands, Options{})
	got, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 qualifying matches, got %d", len(got))
	}
	if got[0].Contact.ID != "contact-15" || got[0].Compatibility != 75 {
		t.Fatalf("expected ground candidate first with 75, got %s with %d", got[0].Contact.ID, got[0].Compatibility)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Compatibility > got[i-1].Compatibility {
			t.Fatalf("expected descending order, got %d before %d", got[i-1].Compatibility, got[i].Compatibility)
		}
	}
	// Los empates en 63 conservan el orden de insercion.
	wantTies := []string{"contact-0", "contact-3", "contact-5", "contact-8", "contact-10", "contact-13"}
	for i, want := range wantTies {
		if got[i+1].Contact.ID != want {
			t.Fatalf("expected tie %d to be %s, got %s", i, want, got[i+1].Contact.ID)
		}
	}
}

func TestRankingStepProcessesOneBatch(t *testing.T) {
	cands := candidates(
		"grass", "grass", "grass", "grass", "grass",
		"grass", "grass", "grass", "grass", "grass",
		"grass", "grass",
	)
	r := NewRanking(mon("fire"), cands, Options{BatchSize: 10})
	if more := r.Step(); !more {
		t.Fatalf("expected more work after first batch of 10 over 12 candidates")
	}
	if len(r.matches) != 10 {
		t.Fatalf("expected 10 scored after one step, got %d", len(r.matches))
	}
	if more := r.Step(); more {
		t.Fatalf("expected no more work after second batch")
	}
	if !r.Done() {
		t.Fatalf("expected ranking to be done")
	}
	if got := r.Results(); len(got) != 12 {
		t.Fatalf("expected 12 matches, got %d", len(got))
	}
}

func TestRankingCancellationDeliversNothing(t *testing.T) {
	cands := candidates("grass", "grass", "grass", "grass", "grass")
	r := NewRanking(mon("fire"), cands, Options{BatchSize: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := r.Run(ctx)
	if err == nil {
		t.Fatalf("expected context error after cancellation")
	}
	if got != nil {
		t.Fatalf("expected no results after cancellation, got %d", len(got))
	}
}

func TestRankingThresholdFiltersBelow(t *testing.T) {
	// fire contra fire puntua 25: nunca califica con el umbral por defecto.
	r := NewRanking(mon("fire"), candidates("fire", "fire"), Options{})
	got, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no qualifying matches, got %d", len(got))
	}
}

func TestRankingEmptyCandidates(t *testing.T) {
	r := NewRanking(mon("fire"), nil, Options{})
	got, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
