package remindersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	remindershttpmapper "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/http/mapper"
	reminderworkflows "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/workflows"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

// ReminderAPI wires HTTP transport with the reminders bounded context service and workflows.
type ReminderAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// NewReminderAPI creates a ReminderAPI. A nil orchestrator runs completion inline.
func NewReminderAPI(service ports.Service, workflows ports.WorkflowOrchestrator) ReminderAPI {
	if workflows == nil {
		workflows = reminderworkflows.NewInlineCompletionWorkflows(service)
	}
	return ReminderAPI{service: service, workflows: workflows}
}

// Get /v1/users/:userId/reminders
// Lists a user's reminders, optionally narrowed to one tab
func (api *ReminderAPI) ListUserReminders(c *gin.Context) {
	userID, ok := bindPathParam(c, "userId")
	if !ok {
		return
	}
	var filter string
	if err := runtime.BindQueryParameter("form", true, false, "filter", c.Request.URL.Query(), &filter); err != nil {
		respondBadRequest(c, err)
		return
	}
	var (
		list []*domain.Reminder
		err  error
	)
	if filter == "" {
		list, err = api.service.ListReminders(c.Request.Context(), userID)
	} else {
		list, err = api.service.ListRemindersByFilter(c.Request.Context(), userID, domain.Filter(filter))
	}
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromDomainList(list, api.service.GetReminderStatus))
}

// Get /v1/users/:userId/reminders/summary
// Counts a user's reminders per status
func (api *ReminderAPI) SummarizeUserReminders(c *gin.Context) {
	userID, ok := bindPathParam(c, "userId")
	if !ok {
		return
	}
	summary, err := api.service.Summarize(c.Request.Context(), userID)
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromSummary(summary))
}

// Get /v1/users/:userId/pets
// Lists the pets a user may schedule reminders for
func (api *ReminderAPI) ListAdoptedPets(c *gin.Context) {
	userID, ok := bindPathParam(c, "userId")
	if !ok {
		return
	}
	pets, err := api.service.ListAdoptedPets(c.Request.Context(), userID)
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromAdoptedPets(pets))
}

// Post /v1/reminders
// Creates a reminder
func (api *ReminderAPI) AddReminder(c *gin.Context) {
	var payload remindershttpmapper.CreateReminder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.AddReminder(c.Request.Context(), remindershttpmapper.ToCreateInput(payload))
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, remindershttpmapper.FromDomain(saved, api.service.GetReminderStatus(saved)))
}

// Get /v1/reminders/:reminderId
// Finds a reminder by id
func (api *ReminderAPI) GetReminder(c *gin.Context) {
	id, ok := bindPathParam(c, "reminderId")
	if !ok {
		return
	}
	reminder, err := api.service.GetReminder(c.Request.Context(), id)
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromDomain(reminder, api.service.GetReminderStatus(reminder)))
}

// Patch /v1/reminders/:reminderId
// Updates reminder fields; a completed flag goes through the completion workflow
func (api *ReminderAPI) UpdateReminder(c *gin.Context) {
	id, ok := bindPathParam(c, "reminderId")
	if !ok {
		return
	}
	var payload remindershttpmapper.PatchReminder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	patch, completed := remindershttpmapper.ToPatch(payload)
	ctx := c.Request.Context()

	var (
		updated *domain.Reminder
		err     error
	)
	if !remindershttpmapper.IsEmptyPatch(patch) || completed == nil {
		updated, err = api.service.UpdateReminder(ctx, id, patch)
		if err != nil {
			respondReminderServiceError(c, err)
			return
		}
	}
	if completed != nil {
		result, err := api.workflows.SetCompleted(ctx, ports.CompletionInput{ReminderID: id, Completed: *completed})
		if err != nil {
			respondReminderServiceError(c, err)
			return
		}
		updated = result.Reminder
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromDomain(updated, api.service.GetReminderStatus(updated)))
}

// Delete /v1/reminders/:reminderId
// Deletes a reminder
func (api *ReminderAPI) DeleteReminder(c *gin.Context) {
	id, ok := bindPathParam(c, "reminderId")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteReminder(c.Request.Context(), id)
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	if !deleted {
		problems.NotFound(c, "reminder", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/reminders/:reminderId/complete
// Marks a reminder completed and projects the next occurrence of recurring reminders
func (api *ReminderAPI) CompleteReminder(c *gin.Context) {
	api.setCompleted(c, true)
}

// Delete /v1/reminders/:reminderId/complete
// Marks a reminder pending again
func (api *ReminderAPI) UncompleteReminder(c *gin.Context) {
	api.setCompleted(c, false)
}

func (api *ReminderAPI) setCompleted(c *gin.Context, completed bool) {
	id, ok := bindPathParam(c, "reminderId")
	if !ok {
		return
	}
	result, err := api.workflows.SetCompleted(c.Request.Context(), ports.CompletionInput{ReminderID: id, Completed: completed})
	if err != nil {
		respondReminderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, remindershttpmapper.FromCompletion(result, api.service.GetReminderStatus))
}

func bindPathParam(c *gin.Context, name string) (string, bool) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondBadRequest(c, err)
		return "", false
	}
	return value, true
}
