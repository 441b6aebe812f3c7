// Package carrier is the HTTP client for the upstream shipping provider.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/pkg/errs"
)

// The per-call deadlines are set by the caller; this is only a backstop.
const clientTimeout = 30 * time.Second

// Client implements ports.CarrierAPI over the provider's JSON API:
//
//	POST {base}/v1/rates
//	POST {base}/v1/shipments
//	GET  {base}/v1/tracking/{reference}
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: clientTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type rateRequest struct {
	OriginPostcode      string `json:"origin_postcode"`
	DestinationPostcode string `json:"destination_postcode"`
	WeightGrams         int    `json:"weight_grams"`
	LengthCm            int    `json:"length_cm,omitempty"`
	WidthCm             int    `json:"width_cm,omitempty"`
	HeightCm            int    `json:"height_cm,omitempty"`
	CashOnDelivery      bool   `json:"cash_on_delivery"`
}

type rateResponse struct {
	Quotes []shipping.Quote `json:"quotes"`
}

func (c *Client) Rates(ctx context.Context, query shipping.RateQuery) ([]shipping.Quote, error) {
	body := rateRequest{
		OriginPostcode:      query.OriginPostcode,
		DestinationPostcode: query.DestinationPostcode,
		WeightGrams:         query.WeightGrams,
		LengthCm:            query.Dimensions.LengthCm,
		WidthCm:             query.Dimensions.WidthCm,
		HeightCm:            query.Dimensions.HeightCm,
		CashOnDelivery:      query.CashOnDelivery,
	}

	var resp rateResponse
	if err := c.do(ctx, http.MethodPost, body, &resp, "v1", "rates"); err != nil {
		return nil, err
	}
	return resp.Quotes, nil
}

func (c *Client) CreateShipment(ctx context.Context, request shipping.ShipmentRequest) (shipping.ShipmentResult, error) {
	var result shipping.ShipmentResult
	if err := c.do(ctx, http.MethodPost, request, &result, "v1", "shipments"); err != nil {
		return shipping.ShipmentResult{}, err
	}
	if result.Reference == "" {
		return shipping.ShipmentResult{}, fmt.Errorf("carrier: shipment response without reference")
	}
	return result, nil
}

func (c *Client) Track(ctx context.Context, reference string) (shipping.TrackingInfo, error) {
	var info shipping.TrackingInfo
	if err := c.do(ctx, http.MethodGet, nil, &info, "v1", "tracking", reference); err != nil {
		return shipping.TrackingInfo{}, err
	}
	if info.Reference == "" {
		info.Reference = reference
	}
	return info, nil
}

func (c *Client) do(ctx context.Context, method string, in, out any, path ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("carrier: decode %s response: %w", path[len(path)-1], err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("shipment", path[len(path)-1])
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("carrier: %w (retry after %q)", errs.ErrRateLimited, resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("carrier: %w", errs.ErrUpstreamTimeout)
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusRequestTimeout:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("carrier: %w", errs.NewUpstreamRejectedError(resp.StatusCode, string(bytes.TrimSpace(msg))))
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("carrier: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
}
