// Package viacep resolves Brazilian postal codes through the public ViaCEP web service.
package viacep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

const (
	DefaultBaseURL = "https://viacep.com.br"
	DefaultTimeout = 5 * time.Second

	// maxBodySize caps how much of a response is read; a real answer is a few hundred bytes.
	maxBodySize = 64 << 10
)

// Client implements ports.AddressResolver.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at another ViaCEP compatible host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout bounds each lookup.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response mirrors the ViaCEP JSON body. Erro arrives as either a boolean or the string
// "true" depending on the API version.
type response struct {
	Cep         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	Erro        json.RawMessage `json:"erro"`
}

func (r response) notFound() bool {
	raw := bytes.Trim(bytes.TrimSpace(r.Erro), `"`)
	return strings.EqualFold(string(raw), "true")
}

// Resolve looks the postal code up. Malformed codes are rejected without a request; codes
// ViaCEP does not know come back as errs.ObjectNotFoundError.
func (c *Client) Resolve(ctx context.Context, postalCode string) (kernel.Address, error) {
	cep, err := kernel.NormalizePostalCode(postalCode)
	if err != nil {
		return kernel.Address{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep), nil)
	if err != nil {
		return kernel.Address{}, fmt.Errorf("build viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Address{}, fmt.Errorf("call viacep: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// ViaCEP answers 400 for codes it considers malformed.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return kernel.Address{}, errs.NewObjectNotFoundError("postalCode", cep)
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.Address{}, fmt.Errorf("viacep: unexpected status %s", resp.Status)
	}

	var body response
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return kernel.Address{}, fmt.Errorf("decode viacep response: %w", err)
	}
	if body.notFound() {
		return kernel.Address{}, errs.NewObjectNotFoundError("postalCode", cep)
	}

	return kernel.NewAddress(kernel.AddressParams{
		PostalCode: body.Cep,
		Street:     body.Logradouro,
		Complement: body.Complemento,
		District:   body.Bairro,
		Locality:   body.Localidade,
		Region:     body.UF,
	})
}
