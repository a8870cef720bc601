package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/smartchef/config"
	"github.com/smartchef/smartchef/internal/api"
	"github.com/smartchef/smartchef/internal/discovery"
	"github.com/smartchef/smartchef/internal/metrics"
	"github.com/smartchef/smartchef/internal/notify"
	"github.com/smartchef/smartchef/internal/router"
	"github.com/smartchef/smartchef/internal/service"
)

const relayPath = "/functions/v1/generate-recipe-details"

// fakeGateway answers every completion with content, or with status when it is non-zero.
func fakeGateway(t *testing.T, status *atomic.Int32, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := int(status.Load()); s != 0 {
			w.WriteHeader(s)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		})
	}))
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ingredients", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ingredients": []string{"tomato", "basil", "rice"}})
	})
	mux.HandleFunc("/api/recipes/match", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tfidf", r.URL.Query().Get("sort"))
		var body struct {
			Ingredients []string `json:"ingredients"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"tomato", "basil"}, body.Ingredients)

		_, _ = w.Write([]byte(`{"matches":[{"id":"soup-1","title":"Tomato Soup","ingredients":["tomato","basil","onion"],
			"hasIngredients":["tomato","basil"],"missingIngredients":["onion"],"relevanceScore":83.4}]}`))
	})
	return httptest.NewServer(mux)
}

func startRelay(t *testing.T, gatewayURL string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	llm := service.NewLLMService(&config.Config{
		GatewayURL:     gatewayURL,
		GatewayAPIKey:  "test-key",
		GatewayModel:   config.DefaultGatewayModel,
		GatewayTimeout: 5 * time.Second,
	}, nil, metrics.NewMetricsCollector(), nil)

	engine := router.SetupRouter(router.Deps{
		Relay:   api.NewRelayHandler(llm, nil),
		Health:  api.NewHealthHandler(nil),
		Metrics: metrics.NewMetricsCollector(),
	})
	return httptest.NewServer(engine)
}

func TestDiscoveryFlowThroughRelay(t *testing.T) {
	var status atomic.Int32
	gw := fakeGateway(t, &status, "```json\n{\"description\":\"Bright and quick.\",\"cuisine\":\"Italian\","+
		"\"prep_time_minutes\":\"10\",\"cook_time_minutes\":25,\"servings\":4,\"difficulty\":\"Easy\","+
		"\"instructions\":[\"Chop\",\"Simmer\"],\"equipment\":[\"Pot\"],\"chef_tips\":[\"Use ripe tomatoes\"]}\x07\n```")
	defer gw.Close()
	relay := startRelay(t, gw.URL)
	defer relay.Close()
	backend := fakeBackend(t)
	defer backend.Close()

	rec := &notify.Recorder{}
	page := discovery.NewPage(
		service.NewBackendClient(backend.URL),
		service.NewDetailsClient(relay.URL+relayPath, "anon-key"),
		rec,
	)
	ctx := context.Background()

	page.LoadCatalog(ctx)
	page.SetInput("TOM")
	assert.Equal(t, []string{"tomato"}, page.Snapshot().Suggestions)

	page.AddIngredient("tomato")
	page.AddIngredient("basil")
	require.True(t, page.Search(ctx))

	snap := page.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, 83.4, snap.Results[0].EffectiveRelevance())

	ticket, ok := page.OpenRecipe("soup-1")
	require.True(t, ok)
	require.True(t, page.ApplyDetail(page.RunDetail(ctx, ticket)))

	v := page.Snapshot().Detail
	assert.Equal(t, "Bright and quick.", v.Recipe.Description)
	assert.Equal(t, "Italian", v.Recipe.Cuisine)
	require.NotNil(t, v.Recipe.PrepTime)
	assert.Equal(t, 10, *v.Recipe.PrepTime)
	assert.Equal(t, []string{"Chop", "Simmer"}, v.Recipe.Instructions)
	assert.Empty(t, rec.All())
}

func TestRelayRateLimitReachesClient(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusTooManyRequests)
	gw := fakeGateway(t, &status, "")
	defer gw.Close()
	relay := startRelay(t, gw.URL)
	defer relay.Close()

	client := service.NewDetailsClient(relay.URL+relayPath, "")
	_, err := client.GenerateDetails(context.Background(), "Tomato Soup", []string{"tomato"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRateLimited))
	assert.Equal(t, http.StatusTooManyRequests, service.StatusCode(err))
	assert.Contains(t, err.Error(), api.MsgRateLimited)
}

func TestRelayCORSOnEveryResponse(t *testing.T) {
	var status atomic.Int32
	gw := fakeGateway(t, &status, "{}")
	defer gw.Close()
	relay := startRelay(t, gw.URL)
	defer relay.Close()

	req, err := http.NewRequest(http.MethodOptions, relay.URL+"/anything", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Post(relay.URL+relayPath, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
