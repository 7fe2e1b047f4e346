package pokeapi

import (
	"strconv"
	"strings"

	"pokecontact/internal/domain"
)

// pokemonResponse cubre solo los campos de la respuesta remota que el
// perfil canonico necesita.
type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
}

type catalogResponse struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// transformPokemon lleva la respuesta cruda a la forma canonica: nombre
// capitalizado, sprite con fallback y los seis stats siempre presentes
// (50 cuando la fuente los omite).
func transformPokemon(raw pokemonResponse) domain.Pokemon {
	sprite := raw.Sprites.FrontDefault
	if sprite == "" {
		sprite = raw.Sprites.Other.OfficialArtwork.FrontDefault
	}
	if sprite == "" {
		sprite = spriteFallback
	}

	types := make([]string, 0, len(raw.Types))
	for _, t := range raw.Types {
		if t.Type.Name != "" {
			types = append(types, t.Type.Name)
		}
	}

	return domain.Pokemon{
		ID:     raw.ID,
		Name:   capitalize(raw.Name),
		Sprite: sprite,
		Types:  types,
		Stats: domain.Stats{
			HP:             baseStat(raw, "hp"),
			Attack:         baseStat(raw, "attack"),
			Defense:        baseStat(raw, "defense"),
			Speed:          baseStat(raw, "speed"),
			SpecialAttack:  baseStat(raw, "special-attack"),
			SpecialDefense: baseStat(raw, "special-defense"),
		},
	}
}

func baseStat(raw pokemonResponse, name string) int {
	for _, s := range raw.Stats {
		if s.Stat.Name == name && s.BaseStat > 0 {
			return s.BaseStat
		}
	}
	return 50
}

// capitalize pone la primera letra en mayuscula y el resto en minuscula.
func capitalize(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// idFromURL extrae el id numerico del anteultimo segmento de la URL de un
// recurso, por ejemplo ".../pokemon/25/" -> 25.
func idFromURL(url string) int {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) == 0 {
		return 0
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}
