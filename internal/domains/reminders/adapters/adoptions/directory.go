package adoptions

import (
	"context"
	"sync"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

var _ ports.AdoptedPets = (*Directory)(nil)

// Directory is an in-memory adopted-pets lookup.
type Directory struct {
	mu   sync.RWMutex
	pets map[string][]domain.AdoptedPet
}

func NewDirectory(pets ...domain.AdoptedPet) *Directory {
	d := &Directory{pets: map[string][]domain.AdoptedPet{}}
	for _, pet := range pets {
		d.Adopt(pet)
	}
	return d
}

// Adopt records that pet.UserID adopted the pet, replacing an earlier entry with the same id.
func (d *Directory) Adopt(pet domain.AdoptedPet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.pets[pet.UserID]
	for i := range list {
		if list[i].ID == pet.ID {
			list[i] = pet
			return
		}
	}
	d.pets[pet.UserID] = append(list, pet)
}

func (d *Directory) ListAdoptedPets(_ context.Context, userID string) ([]domain.AdoptedPet, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.AdoptedPet{}, d.pets[userID]...), nil
}
