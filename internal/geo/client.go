// Package geo resolve endereços em coordenadas usando um serviço externo
// compatível com a API de busca do Nominatim. As chamadas passam por um
// limitador de vazão e um circuit breaker para não derrubar o fluxo de
// criação de ordens quando o provedor está instável.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/config"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/middleware"
)

// ErrNoResults o provedor respondeu mas não encontrou o endereço.
var ErrNoResults = fmt.Errorf("endereço não encontrado pelo geocodificador")

// ErrThrottled a cota local de chamadas foi atingida.
var ErrThrottled = fmt.Errorf("limite de chamadas ao geocodificador atingido")

const (
	requestTimeout = 5 * time.Second

	breakerMaxFailures  = 5
	breakerResetTimeout = 30 * time.Second

	// Nominatim público pede no máximo 1 req/s; o bucket dá uma folga
	// pequena para rajadas.
	bucketCapacity   = 3
	bucketRefillRate = 1
)

// Client implementa a geocodificação consultada pelo serviço de ordens.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	breaker  *middleware.CircuitBreaker
	bucket   *middleware.TokenBucket
	log      logger.Logger
}

func NewClient(cfg config.GeoConfig, log logger.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: requestTimeout},
		breaker:  middleware.NewCircuitBreaker("geocoder", breakerMaxFailures, breakerResetTimeout),
		bucket:   middleware.NewTokenBucket(bucketCapacity, bucketRefillRate),
		log:      log,
	}
}

type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode devolve latitude e longitude do primeiro resultado do provedor.
func (c *Client) Geocode(ctx context.Context, address string) (lat, lng float64, err error) {
	if c == nil || c.endpoint == "" {
		return 0, 0, fmt.Errorf("geocodificador não configurado")
	}
	if address == "" {
		return 0, 0, ErrNoResults
	}
	if !c.bucket.Allow(ctx) {
		return 0, 0, ErrThrottled
	}

	var notFound bool
	err = c.breaker.Call(ctx, func() error {
		var lerr error
		lat, lng, lerr = c.lookup(ctx, address)
		if lerr == ErrNoResults {
			// resposta válida do provedor, não conta como falha
			notFound = true
			return nil
		}
		return lerr
	})
	if err != nil {
		return 0, 0, err
	}
	if notFound {
		return 0, 0, ErrNoResults
	}
	return lat, lng, nil
}

func (c *Client) lookup(ctx context.Context, address string) (float64, float64, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", "br")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocodificador respondeu %d", resp.StatusCode)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("resposta inválida do geocodificador: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude inválida: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude inválida: %w", err)
	}
	if c.log != nil {
		c.log.Debugf("geocodificado %q -> (%f, %f)", address, lat, lng)
	}
	return lat, lng, nil
}
