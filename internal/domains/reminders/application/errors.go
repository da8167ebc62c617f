package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
)

// ErrInvalidInput signals the request violated a reminder invariant.
var ErrInvalidInput = errors.New("invalid reminder input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) || errors.Is(err, domain.ErrInvalidFilter) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
