package service

import (
	"context"
	"errors"
	"fmt"

	"pokecontact/internal/domain"
	"pokecontact/internal/repository"
)

type mockContactRepo struct {
	contacts  []domain.Contact
	listErr   error
	deleteErr map[string]error
	deleted   []string
	created   []domain.Contact
	nextID    int
}

func (m *mockContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.contacts, nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	for _, c := range m.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Contact{}, repository.ErrContactNotFound
}

func (m *mockContactRepo) Create(ctx context.Context, name, phone string) (string, error) {
	m.nextID++
	id := fmt.Sprintf("created-%d", m.nextID)
	full, first, last := repository.SplitContactName(name, phone)
	c := domain.Contact{ID: id, Name: full, FirstName: first, LastName: last, Phone: phone}
	m.contacts = append(m.contacts, c)
	m.created = append(m.created, c)
	return id, nil
}

func (m *mockContactRepo) Update(ctx context.Context, id, name, phone string) error {
	return errors.New("not implemented")
}

func (m *mockContactRepo) Delete(ctx context.Context, id string) error {
	if err, ok := m.deleteErr[id]; ok {
		return err
	}
	m.deleted = append(m.deleted, id)
	for i, c := range m.contacts {
		if c.ID == id {
			m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
			return nil
		}
	}
	return repository.ErrContactNotFound
}

type failingKVStore struct {
	getErr error
	setErr error
}

func (s *failingKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return "", false, nil
}

func (s *failingKVStore) Set(ctx context.Context, key, value string) error {
	return s.setErr
}
