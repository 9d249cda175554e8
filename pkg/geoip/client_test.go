package geoip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-portfolio-backend/pkg/geoip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("Should decode country code and calling code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/203.0.113.9/json/", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			// Extra fields are ignored by the client.
			_, _ = w.Write([]byte(`{"ip":"203.0.113.9","country_code":"DE","country_name":"Germany","country_calling_code":"+49"}`))
		}))
		defer srv.Close()

		client := geoip.NewClient(srv.URL, time.Second)
		prefill, err := client.Lookup(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, "DE", prefill.CountryCode)
		assert.Equal(t, "+49", prefill.CallingCode)
	})

	t.Run("Should fail on non-200 responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := geoip.NewClient(srv.URL, time.Second)
		_, err := client.Lookup(context.Background(), "203.0.113.9")
		assert.Error(t, err)
	})

	t.Run("Should fail on malformed responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"country_name":"nowhere"}`))
		}))
		defer srv.Close()

		client := geoip.NewClient(srv.URL, time.Second)
		_, err := client.Lookup(context.Background(), "203.0.113.9")
		assert.Error(t, err)
	})
}
