package middleware

import (
	"errors"
	"testing"

	"voci/internal/service"
	"voci/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		callback      bool
		authorized    bool
		ensureErr     error
		expectNext    bool
		expectedSent  string
		expectedAlert string
	}{
		{
			name:       "authorized user",
			authorized: true,
			expectNext: true,
		},
		{
			name:         "unauthorized user",
			expectedSent: MsgPasswordPrompt,
		},
		{
			name:          "unauthorized button press",
			callback:      true,
			expectedAlert: MsgPasswordPrompt,
		},
		{
			name:         "repository error",
			ensureErr:    errors.New("db error"),
			expectedSent: MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(testutil.MockUserRepository)
			users.On("EnsureUserExists", mock.Anything, int64(7)).Return(tt.ensureErr)
			users.On("IsAuthorized", mock.Anything, int64(7)).Return(tt.authorized, nil).Maybe()

			mw := AuthMiddleware(service.NewAuthService(users, "secret"), testutil.NewTestLogger())

			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}

			var c *testutil.FakeContext
			if tt.callback {
				c = testutil.NewFakeCallback(7, "add")
			} else {
				c = testutil.NewFakeCommand(7, "/add", "chien fr = de hund")
			}

			require.NoError(t, mw(next)(c))

			assert.Equal(t, tt.expectNext, called)
			assert.Equal(t, tt.expectedSent, c.LastSent())
			if tt.expectedAlert != "" {
				assert.Equal(t, []string{tt.expectedAlert}, c.Alerts)
			} else {
				assert.Empty(t, c.Alerts)
			}
			users.AssertExpectations(t)
		})
	}
}
