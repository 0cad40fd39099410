package entropy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeRandomOrg(t *testing.T, data []int64, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		var req struct {
			Method string `json:"method"`
			Params struct {
				APIKey string `json:"apiKey"`
				N      int    `json:"n"`
			} `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "generateIntegers", req.Method)
		assert.Equal(t, "key", req.Params.APIKey)

		resp := map[string]any{
			"jsonrpc": "2.0",
			"result":  map[string]any{"random": map[string]any{"data": data}},
			"id":      1,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientWithoutKey(t *testing.T) {
	c := NewClient("")
	assert.Nil(t, c)
	assert.False(t, c.Enabled())

	_, err := c.Int63(context.Background())
	assert.Error(t, err)
}

func TestInt63AssemblesParts(t *testing.T) {
	calls := 0
	srv := fakeRandomOrg(t, []int64{1, 2, 3, 4, 5, 6}, &calls)
	c := NewClient("key").WithEndpoint(srv.URL)

	ctx := context.Background()
	v, err := c.Int63(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<42|2<<21|3), v)

	v, err = c.Int63(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4<<42|5<<21|6), v)
	assert.Equal(t, 1, calls)
}

func TestSeedFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":400,"message":"bad key"},"id":1}`))
	}))
	defer srv.Close()

	c := NewClient("key").WithEndpoint(srv.URL)
	_, err := c.Int63(context.Background())
	assert.ErrorContains(t, err, "bad key")

	assert.GreaterOrEqual(t, Seed(context.Background(), c), int64(0))
}

func TestSeedWithoutClient(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		s := Seed(context.Background(), nil)
		assert.GreaterOrEqual(t, s, int64(0))
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}
