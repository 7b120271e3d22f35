package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-hbnb/internal/application"
	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	"github.com/oksasatya/go-hbnb/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Status    int             `json:"status"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Meta      map[string]any  `json:"meta"`
	Error     json.RawMessage `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	facade *application.Facade
	admin  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	facade := application.NewFacade(memory.NewStore(), helpers.BcryptHasher{Cost: bcrypt.MinCost}, logger)
	jwt := helpers.NewJWTManager("test-secret", time.Hour, "hbnb-test")

	root := policy.Caller{Role: policy.RoleAdmin}
	admin, err := facade.CreateUser(context.Background(), root, entity.UserInput{
		FirstName: "Root", LastName: "Admin", Email: "admin@hbnb.io", Password: "admin-pass", IsAdmin: true,
	})
	require.NoError(t, err)
	tok, _, err := jwt.GenerateAccessToken(admin.ID, true)
	require.NoError(t, err)

	engine := NewEngine(Deps{
		Facade: facade,
		JWT:    jwt,
		Logger: logger,
		Health: map[string]handlers.Pinger{"store": func(context.Context) error { return nil }},
	})
	return &api{t: t, engine: engine, facade: facade, admin: tok}
}

func (a *api) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			r = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(a.t, err)
			r = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, APIPrefix+path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (a *api) register(email string) (id, token string) {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/users", "", map[string]any{
		"first_name": "Test", "last_name": "User", "email": email, "password": "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var u map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &u))

	w, env = a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": "password123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &login))
	return u["id"].(string), login.AccessToken
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthAndUnknownRoute(t *testing.T) {
	a := newAPI(t)
	w, env := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	w, _ = a.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuardsAreAllSet(t *testing.T) {
	g := guards(Deps{Limits: Limits{LoginPerMinute: 5, WritesPerMinute: 10}})
	assert.NotNil(t, g.Auth)
	assert.NotNil(t, g.Login)
	assert.NotNil(t, g.Signup)
	assert.NotNil(t, g.Write)
}

func TestHealthReportsFailingCheck(t *testing.T) {
	a := newAPI(t)
	a.engine = NewEngine(Deps{
		Facade: a.facade,
		JWT:    helpers.NewJWTManager("x", time.Hour, "x"),
		Health: map[string]handlers.Pinger{"postgres": func(context.Context) error { return errors.New("down") }},
	})
	w, env := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"postgres":"down"}`, string(env.Error))
}

func TestUserRegistrationAndLogin(t *testing.T) {
	a := newAPI(t)

	w, env := a.do(http.MethodPost, "/users", "", map[string]any{
		"first_name": "Ada", "last_name": "Lovelace", "email": "Ada@Example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	u := decode[map[string]any](t, env.Data)
	assert.Equal(t, "ada@example.com", u["email"])
	assert.Equal(t, false, u["is_admin"])

	w, _ = a.do(http.MethodPost, "/users", "", map[string]any{
		"first_name": "Ada", "last_name": "L", "email": "ADA@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = a.do(http.MethodPost, "/users", "", map[string]any{
		"first_name": "Eve", "last_name": "L", "email": "eve@example.com", "password": "password123", "is_admin": true,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = a.do(http.MethodPost, "/users", a.admin, map[string]any{
		"first_name": "Bob", "last_name": "Boss", "email": "bob@example.com", "password": "password123", "is_admin": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, decode[map[string]any](t, env.Data)["is_admin"])

	w, _ = a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "ada@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[map[string]any](t, env.Data)
	assert.NotEmpty(t, login["access_token"])
	assert.Equal(t, "Bearer", login["token_type"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), helpers.AccessTokenCookie+"=")

	w, env = a.do(http.MethodGet, "/users?email=ADA@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, _ = a.do(http.MethodGet, "/users/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginPayloadValidation(t *testing.T) {
	a := newAPI(t)

	w, env := a.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"email":"must be a valid email"}`, string(env.Error))

	w, env = a.do(http.MethodPost, "/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "payload")
}

func TestUpdateUserRules(t *testing.T) {
	a := newAPI(t)
	id, tok := a.register("carol@example.com")
	otherID, _ := a.register("dave@example.com")

	w, _ := a.do(http.MethodPut, "/users/"+id, "", map[string]any{"first_name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := a.do(http.MethodPut, "/users/"+id, tok, map[string]any{"first_name": "Caroline"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Caroline", decode[map[string]any](t, env.Data)["first_name"])

	w, _ = a.do(http.MethodPut, "/users/"+id, tok, map[string]any{"email": "new@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(http.MethodPut, "/users/"+otherID, tok, map[string]any{"first_name": "Hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(http.MethodPut, "/users/"+id, a.admin, map[string]any{"email": "new@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAmenitiesAreAdminOnly(t *testing.T) {
	a := newAPI(t)
	_, tok := a.register("erin@example.com")

	w, _ := a.do(http.MethodPost, "/amenities", tok, map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := a.do(http.MethodPost, "/amenities", a.admin, map[string]any{"name": "Wifi"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, env.Data)["id"].(string)

	w, _ = a.do(http.MethodPost, "/amenities", a.admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = a.do(http.MethodPut, "/amenities/"+id, a.admin, map[string]any{"name": "Fast wifi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fast wifi", decode[map[string]any](t, env.Data)["name"])

	w, env = a.do(http.MethodGet, "/amenities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["count"])
}

func TestPlacesAndReviewsFlow(t *testing.T) {
	a := newAPI(t)
	ownerID, owner := a.register("olga@example.com")
	_, guest := a.register("gus@example.com")

	w, env := a.do(http.MethodPost, "/amenities", a.admin, map[string]any{"name": "Pool"})
	require.Equal(t, http.StatusCreated, w.Code)
	poolID := decode[map[string]any](t, env.Data)["id"].(string)

	place := map[string]any{"title": "Loft", "price": 120.0, "latitude": 48.85, "longitude": 2.35}
	w, _ = a.do(http.MethodPost, "/places", "", place)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = a.do(http.MethodPost, "/places", owner, place)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[map[string]any](t, env.Data)
	placeID := p["id"].(string)
	assert.Equal(t, ownerID, p["owner_id"])
	assert.Equal(t, []any{}, p["amenities"])

	w, env = a.do(http.MethodPut, "/places/"+placeID, owner, map[string]any{"price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Error), "price")

	w, _ = a.do(http.MethodPut, "/places/"+placeID, guest, map[string]any{"price": 99.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(http.MethodPost, "/places/"+placeID+"/amenities", guest, map[string]any{"amenity_id": poolID})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = a.do(http.MethodPost, "/places/"+placeID+"/amenities", owner, map[string]any{"amenity_id": poolID})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = a.do(http.MethodPost, "/places/"+placeID+"/amenities", owner, map[string]any{"amenity_id": poolID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = a.do(http.MethodGet, "/places/"+placeID+"/amenities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pool", decode[[]map[string]any](t, env.Data)[0]["name"])

	review := map[string]any{"text": "Great", "rating": 5, "place_id": placeID}
	w, _ = a.do(http.MethodPost, "/reviews", owner, review)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = a.do(http.MethodPost, "/reviews", guest, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviewID := decode[map[string]any](t, env.Data)["id"].(string)

	w, _ = a.do(http.MethodPost, "/reviews", guest, review)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = a.do(http.MethodPut, "/reviews/"+reviewID, guest, map[string]any{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = a.do(http.MethodGet, "/places/"+placeID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["count"])

	w, _ = a.do(http.MethodDelete, "/reviews/"+reviewID, owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(http.MethodDelete, "/reviews/"+reviewID, guest, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = a.do(http.MethodGet, "/reviews/"+reviewID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	a := newAPI(t)
	w, _ := a.do(http.MethodGet, "/places", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
