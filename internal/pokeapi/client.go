// Package pokeapi implementa el cliente del catalogo remoto de Pokemon con
// sus dos caches: una por clave (id o nombre) para perfiles completos y una
// de una sola carga para el catalogo entero de pares (id, nombre).
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pokecontact/internal/domain"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"

	// Sprite de reemplazo cuando la fuente no trae ninguno.
	spriteFallback = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/0.png"

	// MaxPokemonID es el limite superior del rango de ids validos del catalogo.
	MaxPokemonID = 1025

	maxSearchResults = 50
)

// Client resuelve perfiles contra la API remota y sirve repetidos desde
// memoria. Es seguro para uso concurrente: las caches van detras de un
// mutex y la carga del catalogo completo se coalesce con singleflight, de
// modo que nunca hay mas de un fetch del catalogo en vuelo.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger

	mu       sync.Mutex
	profiles map[string]domain.Pokemon
	catalog  []domain.CatalogEntry

	flight singleflight.Group
}

// NewClient construye un cliente con timeout finito. baseURL vacio usa la
// API publica; timeout en cero usa 10s.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		profiles: make(map[string]domain.Pokemon),
	}
}

// FetchProfile devuelve el perfil para un id numerico o nombre, usando la
// cache por clave en minusculas. En fallo remoto o datos malformados
// devuelve un *domain.FetchError con la clave solicitada.
func (c *Client) FetchProfile(ctx context.Context, idOrName string) (domain.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return domain.Pokemon{}, &domain.FetchError{Key: idOrName, Err: fmt.Errorf("empty key")}
	}

	c.mu.Lock()
	if p, ok := c.profiles[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	var raw pokemonResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+key, &raw); err != nil {
		return domain.Pokemon{}, &domain.FetchError{Key: key, Err: err}
	}

	p := transformPokemon(raw)

	c.mu.Lock()
	c.profiles[key] = p
	c.mu.Unlock()

	return p, nil
}

// FetchRandomProfile elige un id uniforme en [1, MaxPokemonID] y delega en
// FetchProfile.
func (c *Client) FetchRandomProfile(ctx context.Context) (domain.Pokemon, error) {
	id := rand.IntN(MaxPokemonID) + 1
	return c.FetchProfile(ctx, strconv.Itoa(id))
}

// FetchFullCatalog devuelve el catalogo completo de pares (id, nombre).
// La primera llamada exitosa lo deja cacheado para el resto de la vida del
// proceso; llamadas concurrentes durante la carga comparten un unico fetch
// en vuelo y reciben todas el mismo resultado. Un fallo remoto degrada a
// lista vacia y no se cachea, asi que una llamada posterior reintenta.
func (c *Client) FetchFullCatalog(ctx context.Context) []domain.CatalogEntry {
	c.mu.Lock()
	if c.catalog != nil {
		entries := c.catalog
		c.mu.Unlock()
		return entries
	}
	c.mu.Unlock()

	v, err, _ := c.flight.Do("catalog", func() (interface{}, error) {
		var raw catalogResponse
		if err := c.getJSON(ctx, c.baseURL+"/pokemon?limit=10000", &raw); err != nil {
			return nil, err
		}
		entries := make([]domain.CatalogEntry, 0, len(raw.Results))
		for _, r := range raw.Results {
			entries = append(entries, domain.CatalogEntry{
				ID:   idFromURL(r.URL),
				Name: capitalize(r.Name),
				URL:  r.URL,
			})
		}
		c.mu.Lock()
		c.catalog = entries
		c.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		c.logger.Warn("full catalog fetch failed", zap.Error(err))
		return []domain.CatalogEntry{}
	}
	return v.([]domain.CatalogEntry)
}

// SearchCatalog busca por id exacto cuando la consulta es numerica, o por
// subcadena (sin distinguir mayusculas) contra nombre e id. Dispara la
// carga unica del catalogo si todavia no esta en memoria. Maximo 50
// resultados.
func (c *Client) SearchCatalog(ctx context.Context, query string) []domain.CatalogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.CatalogEntry{}
	}

	if num, err := strconv.Atoi(q); err == nil {
		if num < 1 || num > MaxPokemonID {
			return []domain.CatalogEntry{}
		}
		for _, e := range c.FetchFullCatalog(ctx) {
			if e.ID == num {
				return []domain.CatalogEntry{e}
			}
		}
		return []domain.CatalogEntry{}
	}

	var out []domain.CatalogEntry
	for _, e := range c.FetchFullCatalog(ctx) {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strconv.Itoa(e.ID), q) {
			out = append(out, e)
			if len(out) == maxSearchResults {
				break
			}
		}
	}
	if out == nil {
		out = []domain.CatalogEntry{}
	}
	return out
}

// ClearCache vacia la cache de perfiles por clave. El catalogo completo
// tiene ciclo de vida propio y no se toca aca.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles = make(map[string]domain.Pokemon)
}

// ClearCatalog descarta el catalogo cacheado; la proxima llamada vuelve a
// cargarlo.
func (c *Client) ClearCatalog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("pokeapi http error: status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
