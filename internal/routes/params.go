package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/geo"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

// resolveOrigin parses plz/lat/lng query parameters and resolves them
// to a search origin. On failure it writes the error response and
// returns false.
func resolveOrigin(c *gin.Context, table models.PostcodeTable) (geo.Origin, bool) {
	lat, err := parseFloatParam(c, "lat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return geo.Origin{}, false
	}
	lng, err := parseFloatParam(c, "lng")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return geo.Origin{}, false
	}

	origin, err := geo.Resolve(c.Query("plz"), lat, lng, table.Lookup)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, internal.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, internal.ErrNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return geo.Origin{}, false
	}

	return origin, true
}

func parseFloatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value '%s': not a valid float", name, raw)
	}
	return &val, nil
}

// parseRadius applies the endpoint-specific default and bounds; radius
// validation stays at the route layer so the core never sees bad input.
func parseRadius(c *gin.Context, fallback, min, max int) (int, error) {
	raw := c.Query("radius")
	if raw == "" {
		return fallback, nil
	}
	radius, err := strconv.Atoi(raw)
	if err != nil || radius < min || radius > max {
		return 0, fmt.Errorf("radius must be an integer between %d and %d", min, max)
	}
	return radius, nil
}

func originLabel(origin geo.Origin) string {
	if origin.Kind == geo.OriginPostalCode {
		return fmt.Sprintf("PLZ %s", origin.PostalCode)
	}
	return "Coordinates"
}
