package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

var testTable = models.PostcodeTable{
	"01067": {PostalCode: "01067", Latitude: 51.0504, Longitude: 13.7373},
	"10115": {PostalCode: "10115", Latitude: 52.5323, Longitude: 13.3846},
}

type stubClient struct {
	stations []models.Station
	err      error

	lastLat      float64
	lastLng      float64
	lastRadius   int
	lastFuelType string
}

func (s *stubClient) ListStations(_ context.Context, lat, lng float64, radiusKm int, fuelType string) ([]models.Station, error) {
	s.lastLat = lat
	s.lastLng = lng
	s.lastRadius = radiusKm
	s.lastFuelType = fuelType
	if s.err != nil {
		return nil, s.err
	}
	return s.stations, nil
}

func setupRouter(client internal.StationClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/smart-fuel", SmartFuel(testTable, client))
	r.GET("/diesel-index", DieselIndex(testTable, client))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSmartFuel(t *testing.T) {
	t.Run("Dresden scenario", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{
			{Name: "near", Brand: "A", E5: 1.50, Dist: 2.0},
			{Name: "far", Brand: "B", E5: 1.45, Dist: 10.0},
		}}
		r := setupRouter(client)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/smart-fuel?plz=01067&fuel_type=e5", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.SmartFuelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "PLZ 01067", resp.Metadata.SearchOrigin)
		assert.InDelta(t, 1.475, resp.Metadata.RegionalAvg, 1e-9)
		assert.NotEmpty(t, resp.Metadata.Trend)
		assert.NotEmpty(t, resp.Metadata.Timestamp)
		assert.NotEmpty(t, resp.Metadata.Attribution)

		require.Len(t, resp.BestDeals, 2)
		assert.Equal(t, "far", resp.BestDeals[0].Name)
		assert.Equal(t, 1.45, resp.BestDeals[0].Price)
		assert.InDelta(t, 14.37, resp.BestDeals[0].HassleScore, 0.011)
		assert.Equal(t, models.VerdictTooFar, resp.BestDeals[0].Verdict)
		assert.InDelta(t, 3.62, resp.BestDeals[1].HassleScore, 0.011)

		assert.Equal(t, 51.0504, client.lastLat)
		assert.Equal(t, 13.7373, client.lastLng)
		assert.Equal(t, 5, client.lastRadius)
		assert.Equal(t, models.FuelTypeAll, client.lastFuelType)
	})

	t.Run("Coordinates win over postcode", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{
			{Name: "x", E5: 1.50, Dist: 99.0, Lat: 48.1366, Lng: 11.5771},
		}}
		r := setupRouter(client)

		w, body := doRequest(t, r, "/smart-fuel?plz=01067&lat=48.1366&lng=11.5771")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, 48.1366, client.lastLat)
		metadata := body["metadata"].(map[string]any)
		assert.Equal(t, "Coordinates", metadata["search_origin"])

		// provider distance replaced with the recomputed one
		deals := body["best_deals"].([]any)
		deal := deals[0].(map[string]any)
		assert.Equal(t, 0.0, deal["distance_km"])
	})

	t.Run("No stations with the requested grade", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{
			{Name: "diesel-only", Diesel: 1.65, Dist: 1.0},
		}}
		r := setupRouter(client)

		w, body := doRequest(t, r, "/smart-fuel?plz=01067&fuel_type=e5")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body["message"], "No stations found")
	})

	t.Run("Missing location input", func(t *testing.T) {
		r := setupRouter(&stubClient{})
		w, body := doRequest(t, r, "/smart-fuel")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["error"], "plz")
	})

	t.Run("Unknown postcode", func(t *testing.T) {
		r := setupRouter(&stubClient{})
		w, body := doRequest(t, r, "/smart-fuel?plz=99999")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, body["error"], "99999")
	})

	t.Run("Invalid fuel type", func(t *testing.T) {
		r := setupRouter(&stubClient{})
		w, _ := doRequest(t, r, "/smart-fuel?plz=01067&fuel_type=lpg")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Radius out of bounds", func(t *testing.T) {
		r := setupRouter(&stubClient{})
		for _, radius := range []string{"0", "26", "abc"} {
			w, _ := doRequest(t, r, "/smart-fuel?plz=01067&radius="+radius)
			assert.Equal(t, http.StatusBadRequest, w.Code, "radius %s", radius)
		}
	})

	t.Run("Provider failure", func(t *testing.T) {
		client := &stubClient{err: errors.Mark(errors.New("upstream error: apikey invalid"), internal.ErrProvider)}
		r := setupRouter(client)
		w, body := doRequest(t, r, "/smart-fuel?plz=01067")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, body["message"], "apikey invalid")
	})
}

func TestDieselIndex(t *testing.T) {
	t.Run("Market snapshot from price field", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{
			{Name: "a", Price: 1.70},
			{Name: "b", Price: 1.80},
			{Name: "c", Price: 0},
		}}
		r := setupRouter(client)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/diesel-index?plz=01067", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.DieselIndexResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "01067", resp.IndexMetadata.Region)
		assert.Equal(t, 2, resp.IndexMetadata.StationsScanned)
		assert.InDelta(t, 1.75, resp.MarketRates.AverageIndex, 1e-9)
		assert.Equal(t, 1.70, resp.MarketRates.Low)
		assert.Equal(t, 1.80, resp.MarketRates.High)
		assert.InDelta(t, 3.75, resp.LogisticsTools.SuggestedSurchargePct, 0.011)

		assert.Equal(t, models.FuelTypeDiesel, client.lastFuelType)
		assert.Equal(t, 15, client.lastRadius)
	})

	t.Run("Falls back to the diesel field", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{
			{Name: "a", Diesel: 1.60},
			{Name: "b", Diesel: 1.70},
		}}
		r := setupRouter(client)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/diesel-index?plz=01067", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.DieselIndexResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1.60, resp.MarketRates.Low)
		assert.Equal(t, 1.70, resp.MarketRates.High)
	})

	t.Run("Coordinate origin uses generic region label", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{{Price: 1.70}}}
		r := setupRouter(client)
		w, body := doRequest(t, r, "/diesel-index?lat=51.0&lng=13.7")
		require.Equal(t, http.StatusOK, w.Code)
		metadata := body["index_metadata"].(map[string]any)
		assert.Equal(t, "Coords", metadata["region"])
	})

	t.Run("No diesel data", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{{Name: "closed"}}}
		r := setupRouter(client)
		w, body := doRequest(t, r, "/diesel-index?plz=01067")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body["error"], "No diesel data")
	})

	t.Run("Radius bounds differ from smart-fuel", func(t *testing.T) {
		client := &stubClient{stations: []models.Station{{Price: 1.70}}}
		r := setupRouter(client)

		w, _ := doRequest(t, r, "/diesel-index?plz=01067&radius=50")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 50, client.lastRadius)

		w, _ = doRequest(t, r, "/diesel-index?plz=01067&radius=4")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Provider failure", func(t *testing.T) {
		client := &stubClient{err: errors.Mark(errors.New("upstream error: boom"), internal.ErrProvider)}
		r := setupRouter(client)
		w, _ := doRequest(t, r, "/diesel-index?plz=01067")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
