package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelepov/geoslide_service/internal/config"
	"github.com/shelepov/geoslide_service/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		CatalogURL:      srv.URL,
		CatalogTimeout:  5 * time.Second,
		CatalogCacheTTL: time.Minute,
	}
	return NewClient(cfg, nil, logger), srv
}

func featureResponse(id, datetime string) string {
	return `{"type":"FeatureCollection","features":[{"id":"` + id + `","bbox":[79.0,30.1,79.5,30.5],"properties":{"datetime":"` + datetime + `","eo:cloud_cover":12.5}}]}`
}

const emptyResponse = `{"type":"FeatureCollection","features":[]}`

func TestSearch_FirstTierWins(t *testing.T) {
	var requests []searchRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)
		w.Write([]byte(featureResponse("S2A_TILE_1", "2021-02-05T05:30:00Z")))
	})

	point := models.GeoPoint{Latitude: 30.4, Longitude: 79.3}
	target := time.Date(2021, 2, 10, 0, 0, 0, 0, time.UTC)

	asset, err := client.Search(context.Background(), point, target)
	require.NoError(t, err)
	require.NotNil(t, asset)

	assert.Equal(t, "S2A_TILE_1", asset.ID)
	assert.Equal(t, [4]float64{79.0, 30.1, 79.5, 30.5}, asset.BoundingBox)
	assert.Equal(t, time.Date(2021, 2, 5, 5, 30, 0, 0, time.UTC), asset.AcquiredAt)

	// Первая же ступень дала результат - дальше каталог не опрашивается
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, []string{"sentinel-2-l2a"}, req.Collections)
	assert.Equal(t, "Point", req.Intersects.Type)
	assert.Equal(t, [2]float64{79.3, 30.4}, req.Intersects.Coordinates)
	assert.Equal(t, 1, req.Limit)
	require.Len(t, req.SortBy, 1)
	assert.Equal(t, "desc", req.SortBy[0].Direction)
	assert.Equal(t, 30.0, req.Query["eo:cloud_cover"]["lte"])
	assert.Equal(t, "2021-01-31T00:00:00Z/2021-02-20T00:00:00Z", req.Datetime)
}

func TestSearch_EscalatesThroughAllTiers(t *testing.T) {
	var ceilings []float64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		ceilings = append(ceilings, req.Query["eo:cloud_cover"]["lte"])
		w.Write([]byte(emptyResponse))
	})

	_, err := client.Search(context.Background(), models.GeoPoint{Latitude: 10, Longitude: 10}, time.Now())

	assert.ErrorIs(t, err, models.ErrNoImagery)
	// Ровно три запроса, потолок облачности растет 30 -> 60 -> 100
	assert.Equal(t, []float64{30, 60, 100}, ceilings)
}

func TestSearch_TierFailureEscalates(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(featureResponse("S2B_TILE_2", "2021-03-01T05:30:00Z")))
	})

	asset, err := client.Search(context.Background(), models.GeoPoint{}, time.Now())
	require.NoError(t, err)

	// Ошибка первой ступени не прерывает поиск: результат со второй
	assert.Equal(t, "S2B_TILE_2", asset.ID)
	assert.Equal(t, 2, calls)
}

func TestSearch_MalformedResponseEscalates(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{not json`))
	})

	_, err := client.Search(context.Background(), models.GeoPoint{}, time.Now())

	assert.ErrorIs(t, err, models.ErrNoImagery)
	assert.Equal(t, 3, calls)
}

func TestSearch_ContextCancelAborts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyResponse))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, models.GeoPoint{}, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_WindowWidensPerTier(t *testing.T) {
	var windows []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		windows = append(windows, req.Datetime)
		w.Write([]byte(emptyResponse))
	})

	target := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.Search(context.Background(), models.GeoPoint{}, target)
	require.ErrorIs(t, err, models.ErrNoImagery)

	require.Len(t, windows, 3)
	assert.Equal(t, "2022-06-05T00:00:00Z/2022-06-25T00:00:00Z", windows[0])
	assert.Equal(t, "2022-05-16T00:00:00Z/2022-07-15T00:00:00Z", windows[1])
	assert.Equal(t, "2022-03-17T00:00:00Z/2022-09-13T00:00:00Z", windows[2])
}
