package domain

import "fmt"

// FetchError indica que la llamada remota al catalogo fallo o devolvio
// datos no parseables. Conserva la clave solicitada.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch pokemon %q: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AssociationStoreError indica una falla de lectura o escritura en la
// persistencia de asociaciones contacto-pokemon.
type AssociationStoreError struct {
	Op  string
	Err error
}

func (e *AssociationStoreError) Error() string {
	return fmt.Sprintf("association store %s: %v", e.Op, e.Err)
}

func (e *AssociationStoreError) Unwrap() error { return e.Err }
