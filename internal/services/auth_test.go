package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/fetch"
	"courier-console/pkg/apperrors"
	"courier-console/pkg/constants"
)

func newAuthService(t *testing.T, handler http.Handler) *AuthService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	client, err := api.NewClient(server.URL, 5*time.Second, logger)
	require.NoError(t, err)
	return NewAuthService(client, fetch.NewFetcher(logger), logger)
}

const authBody = `{
	"id": 42, "email": "anna@example.com", "fullName": "Anna",
	"phoneNumber": "+992900000001",
	"roles": [{"id": 1, "name": "ROLE_ADMIN"}]
}`

// Логин с @ уходит как email, без — как номер телефона; незаполненное
// поле сервер получает как null.
func TestSignIn_LoginShapeSelectsField(t *testing.T) {
	cases := []struct {
		name  string
		login string
		check func(t *testing.T, body map[string]any)
	}{
		{
			name:  "email",
			login: "anna@example.com",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "anna@example.com", body["email"])
				assert.Nil(t, body["phoneNumber"])
			},
		},
		{
			name:  "phone",
			login: "+992900000001",
			check: func(t *testing.T, body map[string]any) {
				assert.Nil(t, body["email"])
				assert.Equal(t, "+992900000001", body["phoneNumber"])
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured map[string]any
			mux := http.NewServeMux()
			mux.HandleFunc(constants.AuthSignIn, func(w http.ResponseWriter, r *http.Request) {
				raw, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(raw, &captured))
				w.Write([]byte(authBody))
			})

			s := newAuthService(t, mux)
			auth, err := s.SignIn(context.Background(), dto.SignInForm{Login: tc.login, Password: "secret123"})
			require.NoError(t, err)
			assert.Equal(t, int64(42), auth.ID)
			tc.check(t, captured)
		})
	}
}

func TestSignIn_UnauthorizedMapsToInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(constants.AuthSignIn, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "bad credentials"}`))
	})

	s := newAuthService(t, mux)
	_, err := s.SignIn(context.Background(), dto.SignInForm{Login: "anna@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestFetchAuthState_ByStoredID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(authBody))
	})

	s := newAuthService(t, mux)
	auth, err := s.FetchAuthState(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Anna", auth.FullName)
	assert.True(t, auth.IsAdmin())
}
