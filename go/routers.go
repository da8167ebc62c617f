package remindersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the reminders routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the reminders API
	ReminderAPI ReminderAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListUserReminders",
			http.MethodGet,
			"/v1/users/:userId/reminders",
			handleFunctions.ReminderAPI.ListUserReminders,
		},
		{
			"SummarizeUserReminders",
			http.MethodGet,
			"/v1/users/:userId/reminders/summary",
			handleFunctions.ReminderAPI.SummarizeUserReminders,
		},
		{
			"ListAdoptedPets",
			http.MethodGet,
			"/v1/users/:userId/pets",
			handleFunctions.ReminderAPI.ListAdoptedPets,
		},
		{
			"AddReminder",
			http.MethodPost,
			"/v1/reminders",
			handleFunctions.ReminderAPI.AddReminder,
		},
		{
			"GetReminder",
			http.MethodGet,
			"/v1/reminders/:reminderId",
			handleFunctions.ReminderAPI.GetReminder,
		},
		{
			"UpdateReminder",
			http.MethodPatch,
			"/v1/reminders/:reminderId",
			handleFunctions.ReminderAPI.UpdateReminder,
		},
		{
			"DeleteReminder",
			http.MethodDelete,
			"/v1/reminders/:reminderId",
			handleFunctions.ReminderAPI.DeleteReminder,
		},
		{
			"CompleteReminder",
			http.MethodPost,
			"/v1/reminders/:reminderId/complete",
			handleFunctions.ReminderAPI.CompleteReminder,
		},
		{
			"UncompleteReminder",
			http.MethodDelete,
			"/v1/reminders/:reminderId/complete",
			handleFunctions.ReminderAPI.UncompleteReminder,
		},
	}
}
