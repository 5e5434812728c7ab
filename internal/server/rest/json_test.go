package rest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func TestReadJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "ok", body: `{"title":"x"}`, want: "x"},
		{name: "unknown fields ignored", body: `{"title":"x","ownerId":"someone","extra":1}`, want: "x"},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "syntax", body: `{"title":}`, wantErr: "badly-formed JSON (at character"},
		{name: "truncated", body: `{"title":"x"`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"title":5}`, wantErr: `incorrect JSON type for field "title"`},
		{name: "not an object", body: `"title"`, wantErr: "incorrect JSON type"},
		{name: "two values", body: `{"title":"x"}{"title":"y"}`, wantErr: "single JSON value"},
		{name: "too large", body: `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantErr: "must not be larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var got payload
			err := readJSON(rec, req, &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Title)
		})
	}
}

func TestMalformedBodiesOnTaskRoutes(t *testing.T) {
	f := newFixture(t)
	tok := f.register(t, "u1")

	resp := f.do(t, http.MethodPost, "/tasks", tok, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = f.do(t, http.MethodPost, "/tasks", tok, map[string]string{"title": "ok"})
	require.Equal(t, http.StatusCreated, resp.status)
	var created taskResponse
	resp.decode(t, &created)

	resp = f.do(t, http.MethodPut, "/tasks/"+created.ID, tok, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestTaskValidationOverHTTP(t *testing.T) {
	f := newFixture(t)
	tok := f.register(t, "u1")

	for _, body := range []any{
		map[string]string{},
		map[string]string{"title": ""},
		map[string]string{"title": "x", "status": "archived"},
		map[string]string{"title": strings.Repeat("t", 101)},
		map[string]string{"title": "x", "description": strings.Repeat("d", 501)},
	} {
		resp := f.do(t, http.MethodPost, "/tasks", tok, body)
		assert.Equal(t, http.StatusBadRequest, resp.status, "body: %v", body)

		var env envelope
		resp.decode(t, &env)
		assert.Equal(t, "validation failed", env.Error)
		assert.NotEmpty(t, env.Fields)
	}

	var list []taskResponse
	f.do(t, http.MethodGet, "/tasks", tok, nil).decode(t, &list)
	assert.Empty(t, list)
}
