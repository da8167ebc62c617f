package ports

import (
	"context"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
)

// AdoptedPets resolves which pets an adopter may schedule care for.
type AdoptedPets interface {
	ListAdoptedPets(ctx context.Context, userID string) ([]domain.AdoptedPet, error)
}
