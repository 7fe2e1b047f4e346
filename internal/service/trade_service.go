package service

import (
	"context"
	"encoding/json"
	"fmt"

	"pokecontact/internal/domain"
	"pokecontact/internal/repository"
)

// TradeService arma y consume el payload de intercambio que el cliente
// expone via QR o share sheet. El formato JSON se preserva exactamente
// (name, phoneNumber, pokemonId, pokemon, customStats) para interoperar
// con los clientes ya desplegados.
type TradeService struct {
	associations *AssociationService
	contacts     repository.ContactRepository
}

func NewTradeService(associations *AssociationService, contacts repository.ContactRepository) *TradeService {
	return &TradeService{associations: associations, contacts: contacts}
}

// Export construye el payload de intercambio para un contacto asociado.
func (s *TradeService) Export(ctx context.Context, contactID string) (domain.TradePayload, error) {
	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return domain.TradePayload{}, err
	}
	assoc, ok, err := s.associations.Get(ctx, contactID)
	if err != nil {
		return domain.TradePayload{}, err
	}
	if !ok {
		return domain.TradePayload{}, fmt.Errorf("contact %s has no pokemon association", contactID)
	}

	cs := assoc.CustomStats
	if cs == (domain.CustomStats{}) {
		cs = domain.DefaultCustomStats(assoc.Stats)
	}
	return domain.TradePayload{
		Name:        resolveDisplayName(contact),
		PhoneNumber: contact.Phone,
		PokemonID:   assoc.ID,
		Pokemon:     assoc.Pokemon,
		CustomStats: &cs,
	}, nil
}

// ParseTradePayload decodifica y valida un payload recibido. Un
// customStats ausente se deriva de pokemon.stats con el mismo mapeo
// attack/defense/speed que usa la asociacion por defecto.
func ParseTradePayload(data []byte) (domain.TradePayload, error) {
	var p domain.TradePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.TradePayload{}, fmt.Errorf("decode trade payload: %w", err)
	}
	if p.Pokemon.ID == 0 && p.PokemonID != 0 {
		p.Pokemon.ID = p.PokemonID
	}
	if p.PokemonID == 0 {
		p.PokemonID = p.Pokemon.ID
	}
	if p.PokemonID <= 0 {
		return domain.TradePayload{}, fmt.Errorf("trade payload missing pokemon id")
	}
	if p.CustomStats == nil {
		cs := domain.DefaultCustomStats(p.Pokemon.Stats)
		p.CustomStats = &cs
	}
	return p, nil
}

// Import crea el contacto y su asociacion a partir de un payload recibido.
// Devuelve el id del contacto creado.
func (s *TradeService) Import(ctx context.Context, payload domain.TradePayload) (string, error) {
	id, err := s.contacts.Create(ctx, payload.Name, payload.PhoneNumber)
	if err != nil {
		return "", err
	}
	if err := s.associations.Save(ctx, id, payload.Pokemon, payload.CustomStats); err != nil {
		return "", err
	}
	return id, nil
}
