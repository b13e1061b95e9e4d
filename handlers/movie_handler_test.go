package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/services"
	"go.uber.org/zap"
)

// MockMovieService is a mock implementation of MovieService
type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) List(ctx context.Context) ([]*models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, input services.CreateMovieInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, input services.UpdateMovieInput) (int64, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// withID attaches a chi {id} route parameter to r
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestMovieHandler_HandleList(t *testing.T) {
	svc := new(MockMovieService)
	svc.On("List", mock.Anything).Return([]*models.Movie{{
		ID:          1,
		Title:       "Big Short",
		ReleaseDate: models.NewDate(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)),
	}}, nil)
	handler := NewMovieHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	handler.HandleList(w, httptest.NewRequest(http.MethodGet, "/movies", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"movies":[{"id":1,"title":"Big Short","release_date":"2014-01-01"}]}`, w.Body.String())
}

func TestMovieHandler_HandleListEmpty(t *testing.T) {
	svc := new(MockMovieService)
	svc.On("List", mock.Anything).Return([]*models.Movie{}, nil)
	handler := NewMovieHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	handler.HandleList(w, httptest.NewRequest(http.MethodGet, "/movies", nil))

	assert.JSONEq(t, `{"success":true,"movies":[]}`, w.Body.String())
}

func TestMovieHandler_HandleCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockMovieService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"title":"Big Short","release_date":"2014-01-01"}`,
			setup: func(s *MockMovieService) {
				s.On("Create", mock.Anything, services.CreateMovieInput{Title: "Big Short", ReleaseDate: "2014-01-01"}).Return(int64(2), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"created":2}`,
		},
		{
			name:       "invalid json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":400,"message":"bad request"}`,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":400,"message":"bad request"}`,
		},
		{
			name:       "wrong field type",
			body:       `{"title":42,"release_date":"2014-01-01"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"success":false,"error":422,"message":"unprocessable entity"}`,
		},
		{
			name: "service validation failure",
			body: `{"title":"Big Short","release_date":"soon"}`,
			setup: func(s *MockMovieService) {
				s.On("Create", mock.Anything, mock.Anything).Return(int64(0), services.ErrInvalidReleaseDate)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"success":false,"error":422,"message":"unprocessable entity"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMovieService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			handler := NewMovieHandler(svc, zap.NewNop())

			w := httptest.NewRecorder()
			handler.HandleCreate(w, httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestMovieHandler_HandleUpdate(t *testing.T) {
	t.Run("modified", func(t *testing.T) {
		title := "The Big Short"
		svc := new(MockMovieService)
		svc.On("Update", mock.Anything, int64(1), services.UpdateMovieInput{Title: &title}).Return(int64(1), nil)
		handler := NewMovieHandler(svc, zap.NewNop())

		req := withID(httptest.NewRequest(http.MethodPatch, "/movies/1", strings.NewReader(`{"title":"The Big Short"}`)), "1")
		w := httptest.NewRecorder()
		handler.HandleUpdate(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"modified":1}`, w.Body.String())
	})

	t.Run("unknown movie", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("Update", mock.Anything, int64(404), mock.Anything).Return(int64(0), services.ErrMovieNotFound)
		handler := NewMovieHandler(svc, zap.NewNop())

		req := withID(httptest.NewRequest(http.MethodPatch, "/movies/404", strings.NewReader(`{"title":"Heat"}`)), "404")
		w := httptest.NewRecorder()
		handler.HandleUpdate(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("id out of range", func(t *testing.T) {
		svc := new(MockMovieService)
		handler := NewMovieHandler(svc, zap.NewNop())

		req := withID(httptest.NewRequest(http.MethodPatch, "/movies/99999999999999999999", strings.NewReader(`{}`)), "99999999999999999999")
		w := httptest.NewRecorder()
		handler.HandleUpdate(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMovieHandler_HandleDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("Delete", mock.Anything, int64(3)).Return(nil)
		handler := NewMovieHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		handler.HandleDelete(w, withID(httptest.NewRequest(http.MethodDelete, "/movies/3", nil), "3"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"deleted":"3"}`, w.Body.String())
	})

	t.Run("database failure", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("Delete", mock.Anything, int64(3)).Return(services.WrapInternal("failed", errors.New("db down")))
		handler := NewMovieHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		handler.HandleDelete(w, withID(httptest.NewRequest(http.MethodDelete, "/movies/3", nil), "3"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":500,"message":"internal server error"}`, w.Body.String())
	})
}
