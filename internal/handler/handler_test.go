package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/middleware"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/repository"
	"github.com/noah-isme/event-board/internal/service"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
	"github.com/noah-isme/event-board/web"
)

const sessionCookie = "sid"

type fakeEventsAPI struct {
	mu            sync.Mutex
	events        []models.Event
	categories    []models.Category
	users         []models.User
	categoriesErr error
	nextID        models.ID
	calls         []string
	onCreate      func()
}

func newFakeEventsAPI() *fakeEventsAPI {
	start, _ := models.ParseTimestamp("2024-01-01T09:00:00Z")
	end, _ := models.ParseTimestamp("2024-01-01T11:00:00Z")
	return &fakeEventsAPI{
		events: []models.Event{
			{ID: 1, Title: "Jazz Night", Description: "Live", StartTime: start, EndTime: end, Location: "Berlin", CreatedBy: 1, CategoryIDs: []models.ID{1}},
			{ID: 2, Title: "Morning Yoga", Description: "Calm", StartTime: start, EndTime: end, CreatedBy: 2, CategoryIDs: []models.ID{2}},
			{ID: 3, Title: "Jazz Brunch", Description: "Food", StartTime: start, EndTime: end, CreatedBy: 1, CategoryIDs: []models.ID{2}},
		},
		categories: []models.Category{{ID: 1, Name: "music"}, {ID: 2, Name: "wellness"}},
		users:      []models.User{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Linus"}},
		nextID:     42,
	}
}

func (f *fakeEventsAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeEventsAPI) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeEventsAPI) ListEvents(context.Context) ([]models.Event, error) {
	f.record("GET /events")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeEventsAPI) GetEvent(_ context.Context, id models.ID) (*models.Event, error) {
	f.record("GET /events/:id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.ID == id {
			found := event
			return &found, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

func (f *fakeEventsAPI) ListCategories(context.Context) ([]models.Category, error) {
	f.record("GET /categories")
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeEventsAPI) ListUsers(context.Context) ([]models.User, error) {
	f.record("GET /users")
	return f.users, nil
}

func (f *fakeEventsAPI) CreateEvent(_ context.Context, payload dto.EventPayload) (*models.Event, error) {
	f.record("POST /events")
	if f.onCreate != nil {
		f.onCreate()
	}
	start, _ := models.ParseTimestamp(payload.StartTime)
	end, _ := models.ParseTimestamp(payload.EndTime)
	event := models.Event{
		ID: f.nextID, Title: payload.Title, Description: payload.Description, Image: payload.Image,
		StartTime: start, EndTime: end, Location: payload.Location, CreatedBy: payload.CreatedBy, CategoryIDs: payload.CategoryIDs,
	}
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	return &event, nil
}

func (f *fakeEventsAPI) UpdateEvent(_ context.Context, id models.ID, payload dto.EventPayload) (*models.Event, error) {
	f.record("PATCH /events/:id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, event := range f.events {
		if event.ID == id {
			event.Title = payload.Title
			event.Description = payload.Description
			event.CreatedBy = payload.CreatedBy
			event.CategoryIDs = payload.CategoryIDs
			if payload.Location != "" {
				event.Location = payload.Location
			}
			f.events[i] = event
			return &event, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

func (f *fakeEventsAPI) DeleteEvent(_ context.Context, id models.ID) error {
	f.record("DELETE /events/:id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, event := range f.events {
		if event.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

type testApp struct {
	router *gin.Engine
	api    *fakeEventsAPI
	cookie *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := newFakeEventsAPI()
	notifier := service.NewNotifier(3 * time.Second)
	formatter, err := service.NewDisplayFormatter("Europe/Berlin")
	require.NoError(t, err)
	tmpl, err := web.Templates(formatter)
	require.NoError(t, err)

	loader := service.NewLoaderService(api, notifier, nil)
	mutations, err := service.NewMutationService(api, nil, notifier, nil, nil)
	require.NoError(t, err)
	sessions := service.NewSessionService(repository.NewMemoryCacheRepository(), nil, time.Hour, nil)
	exporter := service.NewExportService(formatter, nil, nil, nil)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.Session(sessionCookie, time.Hour, false))
	RegisterPageRoutes(r,
		NewEventsHandler(loader, mutations, sessions, exporter, notifier, nil),
		NewEventHandler(loader, mutations, sessions, notifier, nil),
	)
	return &testApp{router: r, api: api}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			a.cookie = cookie
		}
	}
	return rec
}

func (a *testApp) doJSON(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, method, target, form, "application/json")
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) *appErrors.Error {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

func cardIDs(view dto.EventListView) []models.ID {
	ids := make([]models.ID, 0, len(view.Events))
	for _, card := range view.Events {
		ids = append(ids, card.ID)
	}
	return ids
}
