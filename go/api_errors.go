package remindersserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	apierrors "github.com/Apurer/petcare-reminders/internal/shared/errors"
)

var problems = apierrors.NewResponder("", mapReminderError)

func mapReminderError(err error) (apierrors.ProblemDetail, bool) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		return apierrors.NewValidationProblem("filter", "must be one of all, upcoming, overdue, completed, future"), true
	case errors.As(err, &verr):
		return apierrors.NewValidationProblem(verr.Field, verr.Reason), true
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrStorageUnavailable):
		return apierrors.ErrStorageUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondReminderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	problems.BadRequest(c, err.Error())
}
