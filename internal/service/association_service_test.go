package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"pokecontact/internal/domain"
	"pokecontact/internal/store"
)

func pikachu() domain.Pokemon {
	return domain.Pokemon{
		ID:     25,
		Name:   "Pikachu",
		Sprite: "https://example.test/25.png",
		Types:  []string{"electric"},
		Stats:  domain.Stats{HP: 35, Attack: 55, Defense: 40, Speed: 90, SpecialAttack: 50, SpecialDefense: 50},
	}
}

func TestSaveDerivesDefaultCustomStats(t *testing.T) {
	svc := NewAssociationService(store.NewMemoryKVStore(), &mockContactRepo{}, zap.NewNop())
	ctx := context.Background()

	if err := svc.Save(ctx, "c1", pikachu(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	a, ok, err := svc.Get(ctx, "c1")
	if err != nil || !ok {
		t.Fatalf("expected stored association, got ok=%v err=%v", ok, err)
	}
	want := domain.CustomStats{ResponseTime: 55, ConfidenceLevel: 40, MessageSpeed: 90}
	if a.CustomStats != want {
		t.Fatalf("expected derived custom stats %+v, got %+v", want, a.CustomStats)
	}
}

func TestSaveKeepsExplicitCustomStats(t *testing.T) {
	svc := NewAssociationService(store.NewMemoryKVStore(), &mockContactRepo{}, zap.NewNop())
	ctx := context.Background()

	cs := domain.CustomStats{ResponseTime: 10, ConfidenceLevel: 20, MessageSpeed: 30}
	if err := svc.Save(ctx, "c1", pikachu(), &cs); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	a, _, _ := svc.Get(ctx, "c1")
	if a.CustomStats != cs {
		t.Fatalf("expected explicit custom stats %+v, got %+v", cs, a.CustomStats)
	}
}

func TestGetMissingAssociation(t *testing.T) {
	svc := NewAssociationService(store.NewMemoryKVStore(), &mockContactRepo{}, zap.NewNop())
	_, ok, err := svc.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("expected missing association")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc := NewAssociationService(store.NewMemoryKVStore(), &mockContactRepo{}, zap.NewNop())
	if err := svc.Remove(context.Background(), "nope"); err != nil {
		t.Fatalf("expected no error removing missing association, got %v", err)
	}
}

func TestListWithPokemonFiltersOrphans(t *testing.T) {
	repo := &mockContactRepo{contacts: []domain.Contact{
		{ID: "c1", Name: "Ash", Phone: "111"},
		{ID: "c2", Name: "Misty", Phone: "222"},
		{ID: "c3", Name: "Brock", Phone: "333"},
	}}
	svc := NewAssociationService(store.NewMemoryKVStore(), repo, zap.NewNop())
	ctx := context.Background()

	if err := svc.Save(ctx, "c1", pikachu(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Save(ctx, "c3", pikachu(), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := svc.ListWithPokemon(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 merged records, got %d", len(got))
	}
	if got[0].ID != "c1" || got[1].ID != "c3" {
		t.Fatalf("expected c1 and c3, got %s and %s", got[0].ID, got[1].ID)
	}
}

func TestListWithPokemonDisplayStatOverride(t *testing.T) {
	repo := &mockContactRepo{contacts: []domain.Contact{{ID: "c1", Name: "Ash", Phone: "111"}}}
	svc := NewAssociationService(store.NewMemoryKVStore(), repo, zap.NewNop())
	ctx := context.Background()

	cs := domain.CustomStats{ResponseTime: 99, ConfidenceLevel: 88, MessageSpeed: 77}
	if err := svc.Save(ctx, "c1", pikachu(), &cs); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := svc.ListWithPokemon(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	s := got[0].Stats
	if s.Attack != 99 || s.Defense != 88 || s.Speed != 77 {
		t.Fatalf("expected custom stats overlaid on attack/defense/speed, got %+v", s)
	}
	if s.HP != 35 || s.SpecialAttack != 50 || s.SpecialDefense != 50 {
		t.Fatalf("expected hp and specials from stored profile, got %+v", s)
	}
	if got[0].Pokemon.Stats != s {
		t.Fatalf("expected pokemon stats to match display stats")
	}
}

func TestListWithPokemonNameFallbacks(t *testing.T) {
	repo := &mockContactRepo{contacts: []domain.Contact{
		{ID: "c1", Name: "", FirstName: "", LastName: "", Phone: "111"},
		{ID: "c2", Name: "222", Phone: "222"},
		{ID: "c3", Name: "", FirstName: "Misty", LastName: "Waterflower", Phone: "333"},
		{ID: "c4", Name: "  Brock  ", Phone: "444"},
	}}
	svc := NewAssociationService(store.NewMemoryKVStore(), repo, zap.NewNop())
	ctx := context.Background()
	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		if err := svc.Save(ctx, id, pikachu(), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	got := svc.ListWithPokemon(ctx)
	want := map[string]string{
		"c1": "Unknown Contact",
		"c2": "Unknown Contact",
		"c3": "Misty Waterflower",
		"c4": "Brock",
	}
	for _, c := range got {
		if c.Name != want[c.ID] {
			t.Fatalf("expected name %q for %s, got %q", want[c.ID], c.ID, c.Name)
		}
	}
}

func TestListWithPokemonDegradesOnReadFailure(t *testing.T) {
	repo := &mockContactRepo{contacts: []domain.Contact{{ID: "c1", Name: "Ash", Phone: "111"}}}
	svc := NewAssociationService(&failingKVStore{getErr: errors.New("kv down")}, repo, zap.NewNop())
	if got := svc.ListWithPokemon(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list on read failure, got %d", len(got))
	}

	svc = NewAssociationService(store.NewMemoryKVStore(), &mockContactRepo{listErr: errors.New("contacts down")}, zap.NewNop())
	if got := svc.ListWithPokemon(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list on contact failure, got %d", len(got))
	}
}

func TestSaveSurfacesStoreError(t *testing.T) {
	svc := NewAssociationService(&failingKVStore{setErr: errors.New("kv down")}, &mockContactRepo{}, zap.NewNop())
	err := svc.Save(context.Background(), "c1", pikachu(), nil)
	if err == nil {
		t.Fatalf("expected error on write failure")
	}
	var se *domain.AssociationStoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected AssociationStoreError, got %T", err)
	}
}

func TestRemoveManyBestEffort(t *testing.T) {
	repo := &mockContactRepo{
		contacts: []domain.Contact{
			{ID: "c1", Name: "Ash", Phone: "111"},
			{ID: "c2", Name: "Misty", Phone: "222"},
			{ID: "c3", Name: "Brock", Phone: "333"},
		},
		deleteErr: map[string]error{"c2": errors.New("device refused")},
	}
	svc := NewAssociationService(store.NewMemoryKVStore(), repo, zap.NewNop())
	ctx := context.Background()
	for _, id := range []string{"c1", "c2", "c3"} {
		if err := svc.Save(ctx, id, pikachu(), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	outcomes := svc.RemoveMany(ctx, []string{"c1", "c2", "c3"})
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes["c1"] != nil || outcomes["c3"] != nil {
		t.Fatalf("expected c1 and c3 to succeed, got %v and %v", outcomes["c1"], outcomes["c3"])
	}
	if outcomes["c2"] == nil {
		t.Fatalf("expected c2 to fail")
	}

	// Los exitos se aplicaron pese al fallo intermedio.
	if _, ok, _ := svc.Get(ctx, "c1"); ok {
		t.Fatalf("expected c1 association removed")
	}
	if _, ok, _ := svc.Get(ctx, "c2"); !ok {
		t.Fatalf("expected c2 association kept after failed delete")
	}
	if _, ok, _ := svc.Get(ctx, "c3"); ok {
		t.Fatalf("expected c3 association removed")
	}
}
