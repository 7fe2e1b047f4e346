package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokecontact/internal/domain"
)

// ErrContactNotFound indica que el contacto no existe en el almacen.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository es la fuente autoritativa de identidad y telefono de
// los contactos. La capa de asociaciones nunca guarda telefonos propios.
type ContactRepository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	GetByID(ctx context.Context, id string) (domain.Contact, error)
	Create(ctx context.Context, name, phone string) (string, error)
	Update(ctx context.Context, id, name, phone string) error
	Delete(ctx context.Context, id string) error
}

type PgContactRepository struct {
	pool *pgxpool.Pool
}

func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

func (r *PgContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	const query = `
		SELECT id, name, first_name, last_name, phone
		FROM contacts
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.FirstName, &c.LastName, &c.Phone); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PgContactRepository) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	const query = `
		SELECT id, name, first_name, last_name, phone
		FROM contacts
		WHERE id = $1
	`
	var c domain.Contact
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.FirstName, &c.LastName, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Contact{}, ErrContactNotFound
	}
	return c, err
}

func (r *PgContactRepository) Create(ctx context.Context, name, phone string) (string, error) {
	const query = `
		INSERT INTO contacts (id, name, first_name, last_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`
	id := uuid.NewString()
	full, first, last := SplitContactName(name, phone)
	if _, err := r.pool.Exec(ctx, query, id, full, first, last, phone); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgContactRepository) Update(ctx context.Context, id, name, phone string) error {
	const query = `
		UPDATE contacts
		SET name = $2, first_name = $3, last_name = $4, phone = $5
		WHERE id = $1
	`
	full, first, last := SplitContactName(name, phone)
	tag, err := r.pool.Exec(ctx, query, id, full, first, last, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// SplitContactName normaliza el nombre al crear o actualizar: un nombre
// vacio, o igual al telefono, se reemplaza por "Unknown Contact"; la
// primera palabra va a first_name y el resto a last_name.
func SplitContactName(name, phone string) (full, first, last string) {
	full = strings.TrimSpace(name)
	if full == "" || full == phone {
		full = "Unknown Contact"
	}
	parts := strings.Fields(full)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return full, first, last
}
