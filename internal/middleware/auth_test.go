package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strenlab/trainload/internal/auth"
	"github.com/strenlab/trainload/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoginChecker := NewMockChecker(ctrl)
	authMiddleware := middleware.NewAuthMiddlewareHandler(mockLoginChecker)

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		mockUserID         int64
		mockUserIDErr      error
		expectedStatusCode int
		expectedUserID     int64
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/health",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "LoginPathWithoutToken",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "NotAllowedPathWithoutToken",
			path:               "/trainload/volume",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/trainload/volume",
			method:             "GET",
			token:              "valid-token",
			mockUserID:         42,
			expectedStatusCode: http.StatusOK,
			expectedUserID:     42,
		},
		{
			name:               "InvalidToken",
			path:               "/trainload/volume",
			method:             "GET",
			token:              "invalid-token",
			mockUserIDErr:      auth.ErrNotLoggedIn,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "OptionsRequest",
			path:               "/trainload/volume",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, tc.path, nil)
			assert.NoError(t, err)
			if tc.token != "" {
				req.Header.Add(auth.TokenHeader, tc.token)
				mockLoginChecker.EXPECT().
					UserID(gomock.Any(), tc.token).
					Return(tc.mockUserID, tc.mockUserIDErr).AnyTimes()
			}

			var gotUserID int64
			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = auth.UserIDFromContext(r.Context())
			})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectedUserID > 0 {
				assert.Equal(t, tc.expectedUserID, gotUserID)
			}
		})
	}
}
