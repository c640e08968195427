package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]*models.Identity

func (f fakeTokens) Parse(token string) (*models.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return nil, errorx.ErrInvalidToken
}

func Test_Identify(t *testing.T) {
	alice := &models.Identity{UserID: 1, Username: "alice"}
	mw := Identify(fakeTokens{"good": alice})

	testCases := []struct {
		name   string
		header string
		want   *models.Identity
		kind   errorx.Kind
		fails  bool
	}{
		{name: "anonymous", header: ""},
		{name: "valid", header: "Bearer good", want: alice},
		{name: "lowercase scheme", header: "bearer good", want: alice},
		{name: "invalid token", header: "Bearer bad", fails: true, kind: errorx.Unauthorized},
		{name: "bad format", header: "Token", fails: true, kind: errorx.Unauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			var seen *models.Identity
			called := false
			err := mw(func(c echo.Context) error {
				called = true
				seen = Caller(c)
				return nil
			})(c)

			if tc.fails {
				require.False(t, called)
				require.Equal(t, tc.kind, errorx.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.True(t, called)
			require.Equal(t, tc.want, seen)
		})
	}
}
