package book

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var testBook = Book{
	ID:     "65a1f0c2e4b0a1b2c3d4e5f6",
	Title:  "The Left Hand of Darkness",
	Author: "Ursula K. Le Guin",
	Year:   intPtr(1969),
	Genre:  strPtr("Science Fiction"),
}

func newTestHandler(t *testing.T) (*MockRepository, *HTTPHandler) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	return mockRepo, NewHTTPHandler(NewService(mockRepo), zap.NewNop())
}

func newRequest(method, target, body, id string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if id != "" {
		r.SetPathValue("id", id)
	}
	return r
}

func TestHTTPHandler_List(t *testing.T) {
	mockRepo, handler := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{testBook}, nil)

		w := httptest.NewRecorder()
		handler.List(w, newRequest(http.MethodGet, "/books", "", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, []Book{testBook}, got)
	})

	t.Run("empty store encodes an empty array", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		handler.List(w, newRequest(http.MethodGet, "/books", "", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, ErrStoreUnavailable)

		w := httptest.NewRecorder()
		handler.List(w, newRequest(http.MethodGet, "/books", "", ""))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error fetching books"}`, w.Body.String())
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	mockRepo, handler := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), testBook.ID).Return(testBook, nil)

		w := httptest.NewRecorder()
		handler.Get(w, newRequest(http.MethodGet, "/books/"+testBook.ID, "", testBook.ID))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		handler.Get(w, newRequest(http.MethodGet, "/books/missing", "", "missing"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "x").Return(Book{}, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.Get(w, newRequest(http.MethodGet, "/books/x", "", "x"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error fetching book"}`, w.Body.String())
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockRepository)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"Science Fiction"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					Insert(gomock.Any(), Book{Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965), Genre: strPtr("Science Fiction")}).
					Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965), Genre: strPtr("Science Fiction")}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert","year":1965,"genre":"Science Fiction"}`,
		},
		{
			name: "optional fields omitted",
			body: `{"title":"Dune","author":"Frank Herbert"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					Insert(gomock.Any(), Book{Title: "Dune", Author: "Frank Herbert"}).
					Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert"}`,
		},
		{
			name:           "missing title",
			body:           `{"author":"Frank Herbert"}`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Title and author are required"}`,
		},
		{
			name:           "empty author",
			body:           `{"title":"Dune","author":""}`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Title and author are required"}`,
		},
		{
			name:           "no body",
			body:           "",
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Title and author are required"}`,
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "numeric string year",
			body: `{"title":"Dune","author":"Frank Herbert","year":"1965"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					Insert(gomock.Any(), Book{Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965)}).
					Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965)}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert","year":1965}`,
		},
		{
			name:           "trailing data after the object",
			body:           `{"title":"Dune","author":"Frank Herbert"} garbage`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "store error",
			body: `{"title":"Dune","author":"Frank Herbert"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(Book{}, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error adding book"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, handler := newTestHandler(t)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			handler.Create(w, newRequest(http.MethodPost, "/books", tt.body, ""))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHTTPHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockRepository)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "partial update",
			body: `{"genre":"Classic"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpdateByID(gomock.Any(), "1", Patch{Genre: Some("Classic")}).
					Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert", Genre: strPtr("Classic")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert","genre":"Classic"}`,
		},
		{
			name: "blank title is accepted",
			body: `{"title":""}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpdateByID(gomock.Any(), "1", Patch{Title: Some("")}).
					Return(Book{ID: "1", Title: "", Author: "Frank Herbert"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"1","title":"","author":"Frank Herbert"}`,
		},
		{
			name: "null clears year and genre",
			body: `{"year":null,"genre":null}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpdateByID(gomock.Any(), "1", Patch{Year: Null[int](), Genre: Null[string]()}).
					Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert"}`,
		},
		{
			name: "id in body is ignored",
			body: `{"id":"other","author":"F. Herbert"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpdateByID(gomock.Any(), "1", Patch{Author: Some("F. Herbert")}).
					Return(Book{ID: "1", Title: "Dune", Author: "F. Herbert"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"1","title":"Dune","author":"F. Herbert"}`,
		},
		{
			name: "empty patch returns the current record",
			body: `{}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().GetByID(gomock.Any(), "1").Return(Book{ID: "1", Title: "Dune", Author: "Frank Herbert"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"1","title":"Dune","author":"Frank Herbert"}`,
		},
		{
			name: "not found",
			body: `{"title":"Dune"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().UpdateByID(gomock.Any(), "1", gomock.Any()).Return(Book{}, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Book not found"}`,
		},
		{
			name:           "malformed json",
			body:           `[1,2]`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "store error",
			body: `{"title":"Dune"}`,
			setupMock: func(m *MockRepository) {
				m.EXPECT().UpdateByID(gomock.Any(), "1", gomock.Any()).Return(Book{}, ErrStoreUnavailable)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error updating book"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, handler := newTestHandler(t)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			handler.Update(w, newRequest(http.MethodPut, "/books/1", tt.body, "1"))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHTTPHandler_Delete(t *testing.T) {
	mockRepo, handler := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().DeleteByID(gomock.Any(), "1").Return(nil)

		w := httptest.NewRecorder()
		handler.Delete(w, newRequest(http.MethodDelete, "/books/1", "", "1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().DeleteByID(gomock.Any(), "1").Return(ErrNotFound)

		w := httptest.NewRecorder()
		handler.Delete(w, newRequest(http.MethodDelete, "/books/1", "", "1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().DeleteByID(gomock.Any(), "1").Return(ErrStoreUnavailable)

		w := httptest.NewRecorder()
		handler.Delete(w, newRequest(http.MethodDelete, "/books/1", "", "1"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error deleting book"}`, w.Body.String())
	})
}
