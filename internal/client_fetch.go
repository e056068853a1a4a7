package internal

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/kofalt/go-memoize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hinwise/smart-tanken-api/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ATTRIBUTION is required by the upstream licence and included in every
// API response.
var ATTRIBUTION = []string{
	"Preisdaten: Tankerkönig (https://creativecommons.tankerkoenig.de), CC BY 4.0",
	"Quelldaten: MTS-K (Markttransparenzstelle für Kraftstoffe)",
}

var providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "smart_tanken_provider_requests_total",
	Help: "Total number of upstream tankerkoenig requests by result.",
}, []string{"result"})

// HTTPStatusError is returned when the remote server responds with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http status response from %s: %s", e.URL, e.Status)
}

// StationClient is the outbound price-data collaborator: a radius
// search around an origin, optionally restricted to one fuel grade.
type StationClient interface {
	ListStations(ctx context.Context, lat, lng float64, radiusKm int, fuelType string) ([]models.Station, error)
}

type tankerClient struct {
	baseUrl string
	apiKey  string
	client  *http.Client
	cache   *memoize.Memoizer
}

// NewTankerClient builds a tankerkoenig client. Upstream prices change
// on a multi-minute cadence, so identical lookups are memoized for a
// short TTL. Each upstream call is a single attempt with a 10s timeout
// and no retries; failures surface to the caller verbatim.
func NewTankerClient(apiKey string) (StationClient, error) {
	if apiKey == "" {
		return nil, errors.New("TANKER_API_KEY is not set")
	}

	return &tankerClient{
		baseUrl: "https://creativecommons.tankerkoenig.de/json",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   memoize.NewMemoizer(5*time.Minute, 10*time.Minute),
	}, nil
}

func (tc *tankerClient) ListStations(ctx context.Context, lat, lng float64, radiusKm int, fuelType string) ([]models.Station, error) {
	key := fmt.Sprintf("list:%.4f:%.4f:%d:%s", lat, lng, radiusKm, fuelType)
	stations, err, cached := memoize.Call(tc.cache, key, func() ([]models.Station, error) {
		return tc.fetchStations(ctx, lat, lng, radiusKm, fuelType)
	})
	if cached {
		providerRequests.WithLabelValues("cached").Inc()
	}
	return stations, err
}

func (tc *tankerClient) fetchStations(ctx context.Context, lat, lng float64, radiusKm int, fuelType string) ([]models.Station, error) {
	params := neturl.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("rad", strconv.Itoa(radiusKm))
	params.Set("sort", "dist")
	params.Set("type", fuelType)
	params.Set("apikey", tc.apiKey)
	url := fmt.Sprintf("%s/list.php?%s", tc.baseUrl, params.Encode())

	body, err := tc.get(ctx, url)
	if err != nil {
		providerRequests.WithLabelValues("http_error").Inc()
		return nil, errors.Mark(err, ErrProvider)
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.Printf("failed to close body: %v", err)
		}
	}()

	var resp models.StationListResponse
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&resp); err != nil {
		providerRequests.WithLabelValues("decode_error").Inc()
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal response"), ErrProvider)
	}

	if !resp.Ok {
		providerRequests.WithLabelValues("provider_error").Inc()
		return nil, errors.Mark(errors.Newf("upstream error: %s", resp.Message), ErrProvider)
	}

	providerRequests.WithLabelValues("ok").Inc()
	return resp.Stations, nil
}

func (tc *tankerClient) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &HTTPStatusError{URL: url, Status: resp.Status, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
