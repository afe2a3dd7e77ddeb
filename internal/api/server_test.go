package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/lumen/internal/api"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/state"
	"github.com/wheelibin/lumen/mocks"
)

type fixture struct {
	settings  *mocks.MockApiServerSettings
	refresher *mocks.MockApiRefresher
	store     *state.Store
	router    http.Handler
}

func newFixture(t *testing.T) fixture {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	f := fixture{
		settings:  mocks.NewMockApiServerSettings(t),
		refresher: mocks.NewMockApiRefresher(t),
		store:     state.NewStore(),
	}
	link := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	f.router = api.NewServer(logger, link, f.settings, f.refresher, f.store).Router()
	return f
}

func (f fixture) serve(method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func Test_Config(t *testing.T) {

	t.Run("get should return the current server", func(t *testing.T) {
		f := newFixture(t)
		f.settings.On("Server").Return("http://localhost:56780")

		rec := f.serve(http.MethodGet, "/config", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"server":"http://localhost:56780"}`, rec.Body.String())
	})

	t.Run("put should save the server and refresh", func(t *testing.T) {
		// arrange
		f := newFixture(t)
		f.settings.On("SetServer", "http://10.0.0.2:56780").Return(nil).Once()
		f.settings.On("Server").Return("http://10.0.0.2:56780")
		f.refresher.On("Refresh").Return(nil).Once()

		// act
		rec := f.serve(http.MethodPut, "/config", `{"server":"http://10.0.0.2:56780"}`)

		// assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"server":"http://10.0.0.2:56780"}`, rec.Body.String())
	})

	t.Run("put should succeed when the bridge is busy", func(t *testing.T) {
		f := newFixture(t)
		f.settings.On("SetServer", "").Return(nil).Once()
		f.settings.On("Server").Return("")
		f.refresher.On("Refresh").Return(errors.New("bridge busy")).Once()

		rec := f.serve(http.MethodPut, "/config", `{"server":""}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid body should be rejected", func(t *testing.T) {
		f := newFixture(t)

		rec := f.serve(http.MethodPut, "/config", `{"server":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.settings.AssertNotCalled(t, "SetServer", "")
	})

	t.Run("save failure should be an internal error", func(t *testing.T) {
		f := newFixture(t)
		f.settings.On("SetServer", "http://x").Return(errors.New("disk full")).Once()

		rec := f.serve(http.MethodPut, "/config", `{"server":"http://x"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		f.refresher.AssertNotCalled(t, "Refresh")
	})
}

func Test_Routes(t *testing.T) {

	t.Run("lights should list the cached lights", func(t *testing.T) {
		f := newFixture(t)
		f.store.ReplaceAll([]models.Light{{ID: "a", Label: "Lamp", On: true}})

		rec := f.serve(http.MethodGet, "/lights", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":"a","label":"Lamp","on":true,"color":null,"tags":null}]`, rec.Body.String())
	})

	t.Run("ws should be handled by the link", func(t *testing.T) {
		f := newFixture(t)

		rec := f.serve(http.MethodGet, "/ws", "")

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}
