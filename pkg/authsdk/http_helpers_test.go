package authsdk

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("expected status decodes", func(t *testing.T) {
		var c Category
		require.NoError(t, decodeJSON(response(http.StatusCreated, `{"codigo":6,"nome":"Lazer"}`), &c, http.StatusCreated))
		require.Equal(t, "Lazer", c.Name)
	})

	t.Run("error body becomes OAuth2Error", func(t *testing.T) {
		var c Category
		err := decodeJSON(response(http.StatusForbidden,
			`{"error":"insufficient_scope","error_description":"required scope: write","user_message":"Acesso negado"}`),
			&c, http.StatusOK)

		var oe *OAuth2Error
		require.True(t, errors.As(err, &oe))
		require.Equal(t, http.StatusForbidden, oe.StatusCode)
		require.Equal(t, "insufficient_scope", oe.Code)
		require.Equal(t, "Acesso negado", oe.UserMessage)
	})

	t.Run("other success status is still an error", func(t *testing.T) {
		var c Category
		err := decodeJSON(response(http.StatusOK, `{}`), &c, http.StatusCreated)
		require.EqualError(t, err, "unexpected status 200")
	})

	t.Run("garbage body on success", func(t *testing.T) {
		var c Category
		require.Error(t, decodeJSON(response(http.StatusOK, `<html>`), &c, http.StatusOK))
	})
}

func TestCheckStatusNoContent(t *testing.T) {
	require.NoError(t, checkStatusNoContent(response(http.StatusNoContent, "")))

	err := checkStatusNoContent(response(http.StatusBadGateway, "upstream exploded"))
	var oe *OAuth2Error
	require.True(t, errors.As(err, &oe))
	require.Equal(t, ErrorCodeServerError, oe.Code)
	require.Contains(t, oe.Description, "502")
}
