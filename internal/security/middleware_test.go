package security

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserLoader struct {
	mock.Mock
}

func (m *MockUserLoader) FindActiveUser(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	service := newTestJWTService()
	storedToken := "stored-refresh"
	alice := &model.User{UUID: "u-1", Username: "alice", PasswordHash: "hash", RefreshToken: &storedToken}
	bob := &model.User{UUID: "u-2", Username: "bob"}

	aliceToken, err := service.GenerateAccessToken(alice)
	require.NoError(t, err)
	bobToken, err := service.GenerateAccessToken(bob)
	require.NoError(t, err)

	tests := []struct {
		name         string
		cookie       string
		header       string
		setupMocks   func(m *MockUserLoader)
		expectStatus int
		expectMsg    string
		expectUser   string
	}{
		{
			name:         "no token",
			expectStatus: http.StatusUnauthorized,
			expectMsg:    "unauthorized request",
		},
		{
			name:         "malformed header",
			header:       "Token " + aliceToken,
			expectStatus: http.StatusUnauthorized,
			expectMsg:    "unauthorized request",
		},
		{
			name:         "invalid token",
			header:       "Bearer garbage",
			expectStatus: http.StatusUnauthorized,
			expectMsg:    "invalid access token",
		},
		{
			name:   "bearer header",
			header: "Bearer " + aliceToken,
			setupMocks: func(m *MockUserLoader) {
				m.On("FindActiveUser", mock.Anything, "u-1").Return(alice, nil)
			},
			expectStatus: http.StatusOK,
			expectUser:   "u-1",
		},
		{
			name:   "cookie wins over header",
			cookie: bobToken,
			header: "Bearer " + aliceToken,
			setupMocks: func(m *MockUserLoader) {
				m.On("FindActiveUser", mock.Anything, "u-2").Return(bob, nil)
			},
			expectStatus: http.StatusOK,
			expectUser:   "u-2",
		},
		{
			name:   "user deleted",
			header: "Bearer " + aliceToken,
			setupMocks: func(m *MockUserLoader) {
				m.On("FindActiveUser", mock.Anything, "u-1").
					Return(nil, apperror.NotFound("user does not exist", apperror.ErrNotFound))
			},
			expectStatus: http.StatusUnauthorized,
			expectMsg:    "invalid access token",
		},
		{
			name:   "store failure",
			header: "Bearer " + aliceToken,
			setupMocks: func(m *MockUserLoader) {
				m.On("FindActiveUser", mock.Anything, "u-1").Return(nil, errors.New("connection refused"))
			},
			expectStatus: http.StatusInternalServerError,
			expectMsg:    "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := new(MockUserLoader)
			if tt.setupMocks != nil {
				tt.setupMocks(loader)
			}

			var seen *model.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/current-user", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(service, loader)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectMsg != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.expectMsg, body["message"])
				assert.Equal(t, false, body["success"])
				assert.Nil(t, body["data"])
				assert.Nil(t, seen)
			}
			if tt.expectUser != "" {
				require.NotNil(t, seen)
				assert.Equal(t, tt.expectUser, seen.UUID)
				assert.Empty(t, seen.PasswordHash)
				assert.Nil(t, seen.RefreshToken)
			}

			loader.AssertExpectations(t)
		})
	}
}
