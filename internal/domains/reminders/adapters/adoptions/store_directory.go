package adoptions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

// DefaultKey is the document holding the adoption records written by the shelter console.
const DefaultKey = "petcare.adoptions"

var _ ports.AdoptedPets = (*StoreDirectory)(nil)

// StoreDirectory reads adoption records from the shared document store.
type StoreDirectory struct {
	store ports.DocumentStore
	key   string
}

type adoptionDocument struct {
	UserID  string `json:"userId"`
	PetID   string `json:"petId"`
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
}

func NewStoreDirectory(store ports.DocumentStore) *StoreDirectory {
	return &StoreDirectory{store: store, key: DefaultKey}
}

func (d *StoreDirectory) ListAdoptedPets(ctx context.Context, userID string) ([]domain.AdoptedPet, error) {
	raw, err := d.store.Get(ctx, d.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	pets := []domain.AdoptedPet{}
	if len(raw) == 0 {
		return pets, nil
	}
	var docs []adoptionDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: malformed adoption records: %w", ports.ErrStorageUnavailable, err)
	}
	for _, doc := range docs {
		if doc.UserID != userID {
			continue
		}
		pets = append(pets, domain.AdoptedPet{ID: doc.PetID, UserID: doc.UserID, Name: doc.Name, Species: doc.Species})
	}
	return pets, nil
}
