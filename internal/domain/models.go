package domain

// Pokemon es el perfil canonico de una especie una vez transformada la
// respuesta remota: id estable, nombre capitalizado, sprite (o placeholder),
// 1-2 tipos elementales y el bloque fijo de seis stats.
type Pokemon struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Sprite string   `json:"sprite"`
	Types  []string `json:"types"`
	Stats  Stats    `json:"stats"`
}

// Stats siempre tiene los seis campos poblados; los ausentes en la fuente
// se rellenan con 50 al transformar.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	Speed          int `json:"speed"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
}

// CustomStats son los tres atributos editables por el usuario, en [0,100].
// Superponen attack/defense/speed solo para visualizacion.
type CustomStats struct {
	ResponseTime    int `json:"responseTime"`
	ConfidenceLevel int `json:"confidenceLevel"`
	MessageSpeed    int `json:"messageSpeed"`
}

// DefaultCustomStats deriva el triple por defecto desde los stats del perfil.
func DefaultCustomStats(s Stats) CustomStats {
	return CustomStats{
		ResponseTime:    statOr50(s.Attack),
		ConfidenceLevel: statOr50(s.Defense),
		MessageSpeed:    statOr50(s.Speed),
	}
}

func statOr50(v int) int {
	if v <= 0 {
		return 50
	}
	return v
}

// Association vincula un contacto con su Pokemon asignado mas los stats
// personalizados. Los campos del Pokemon van aplanados en el JSON para
// mantener el formato del documento persistido.
type Association struct {
	Pokemon
	CustomStats CustomStats `json:"customStats"`
}

// CatalogEntry es el par (id, nombre) usado para busqueda antes de tener
// el perfil completo.
type CatalogEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Contact es el registro del almacen de contactos del dispositivo.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ContactWithPokemon es el registro fusionado que consume la capa de
// presentacion: identidad del contacto mas el perfil asignado, con los
// stats de visualizacion ya superpuestos.
type ContactWithPokemon struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber"`
	Pokemon     Pokemon     `json:"pokemon"`
	PokemonID   int         `json:"pokemonId"`
	PokemonName string      `json:"pokemonName"`
	Sprite      string      `json:"sprite"`
	Types       []string    `json:"types"`
	Stats       Stats       `json:"stats"`
	CustomStats CustomStats `json:"customStats"`
}

// TradePayload es el documento compartido por QR o share sheet. El formato
// se preserva exactamente para interoperar con clientes existentes.
type TradePayload struct {
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phoneNumber"`
	PokemonID   int          `json:"pokemonId"`
	Pokemon     Pokemon      `json:"pokemon"`
	CustomStats *CustomStats `json:"customStats,omitempty"`
}

// Match es un candidato calificado del ranking de compatibilidad.
type Match struct {
	Contact       ContactWithPokemon `json:"contact"`
	Compatibility int                `json:"compatibility"`
}
