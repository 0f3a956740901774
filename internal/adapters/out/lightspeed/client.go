// Package lightspeed implements the consignment gateway against the
// Lightspeed retail API. Bookings are created with a single POST and read
// back with a GET; every transport or protocol problem surfaces as
// errs.ExternalServiceError so callers can distinguish gateway trouble from
// their own mistakes.
package lightspeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stocktransfer/internal/core/ports"
	"stocktransfer/internal/pkg/errs"
)

const serviceName = "lightspeed"

// consignmentTypeSupplier is the consignment type the retail API expects for
// inbound stock movements.
const consignmentTypeSupplier = "SUPPLIER"

// Client calls the Lightspeed consignments API. It implements
// ports.ConsignmentGateway.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given API base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type consignmentProduct struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

type consignmentPayload struct {
	OutletID            string               `json:"outlet_id"`
	ConsignmentProducts []consignmentProduct `json:"consignment_products"`
	DueAt               string               `json:"due_at"`
	Name                string               `json:"name"`
	Type                string               `json:"type"`
}

type bookingRequestBody struct {
	Consignment consignmentPayload `json:"consignment"`
}

type consignmentResponse struct {
	Consignment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"consignment"`
}

// Book registers the consignment and returns the external reference id.
func (c *Client) Book(ctx context.Context, request ports.BookingRequest) (string, error) {
	products := make([]consignmentProduct, 0, len(request.Items))
	for _, item := range request.Items {
		products = append(products, consignmentProduct{
			ProductID: item.ProductID.String(),
			Count:     item.Quantity,
		})
	}

	body := bookingRequestBody{
		Consignment: consignmentPayload{
			OutletID:            request.DestinationLocation.String(),
			ConsignmentProducts: products,
			DueAt:               request.DueDate.Format(time.RFC3339),
			Name:                request.Name,
			Type:                consignmentTypeSupplier,
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return "", errs.NewExternalServiceErrorWithCause(serviceName, err)
	}

	url := c.baseURL + "/api/2.0/consignments.json"
	response, err := c.do(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}

	if response.Consignment.ID == "" {
		return "", errs.NewExternalServiceErrorWithCause(
			serviceName, fmt.Errorf("booking response contains no consignment id"),
		)
	}

	return response.Consignment.ID, nil
}

// Status returns the external system's current status string for a
// previously booked consignment.
func (c *Client) Status(ctx context.Context, consignmentRef string) (string, error) {
	if consignmentRef == "" {
		return "", errs.NewValueIsRequiredError("consignmentRef")
	}

	url := fmt.Sprintf("%s/api/2.0/consignments/%s.json", c.baseURL, consignmentRef)
	response, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	return response.Consignment.Status, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*consignmentResponse, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, err)
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return nil, errs.NewExternalServiceErrorWithCause(
			serviceName, fmt.Errorf("unexpected response status %d", httpResponse.StatusCode),
		)
	}

	var response consignmentResponse
	if err = json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return nil, errs.NewExternalServiceErrorWithCause(serviceName, err)
	}

	return &response, nil
}
