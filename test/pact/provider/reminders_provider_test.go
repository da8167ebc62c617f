//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/petcare-reminders/test/pact"

	remindersserver "github.com/Apurer/petcare-reminders/go"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/adoptions"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/collection"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/memory"
	remindersobs "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/observability"
	remindersworkflows "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/workflows"
	remindersapp "github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestRemindersProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateRemindersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateReminderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedReminder(t, pacttest.ExistingReminder)
			}
			return nil, nil
		},
		pacttest.StateReminderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store  *memory.DocumentStore
	repo   *collection.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := memory.NewDocumentStore()
	repo := collection.NewRepository(store)
	pets := adoptions.NewDirectory(domain.AdoptedPet{ID: pacttest.PetID, UserID: pacttest.UserID, Name: pacttest.PetName, Species: "dog"})
	service := remindersobs.New(remindersapp.NewService(repo, remindersapp.WithAdoptedPets(pets)))
	workflows := remindersworkflows.NewInlineCompletionWorkflows(service)

	handlers := remindersserver.ApiHandleFunctions{
		ReminderAPI: remindersserver.NewReminderAPI(service, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = remindersserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{store: store, repo: repo, server: server}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	require.NoError(t, a.store.Set(context.Background(), collection.DefaultKey, []byte(`[]`)))
}

func (a *contractProviderApp) seedReminder(t testing.TB, id string) {
	t.Helper()
	reminder, err := domain.NewReminder(id, pacttest.UserID, pacttest.PetID, domain.CareType(pacttest.ExampleCareType), pacttest.ExampleTitle, pacttest.ExampleDueDate)
	require.NoError(t, err)
	require.NoError(t, reminder.SetRecurrence(true, domain.Interval(pacttest.ExampleInterval)))
	require.NoError(t, a.repo.Put(context.Background(), reminder))
}
