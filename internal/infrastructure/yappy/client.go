// Package yappy implements the device and payment ports against the Yappy
// payment network.
package yappy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/config"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.YappyConfig) *Client {
	return &Client{
		baseURL:   cfg.ResolveBaseURL(),
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

var (
	_ application.DeviceClient  = (*Client)(nil)
	_ application.PaymentClient = (*Client)(nil)
)

// OpenDevice performs the device-authentication exchange and returns the
// bearer token Yappy issued.
func (c *Client) OpenDevice(ctx context.Context, req dto.OpenDeviceRequest) (string, error) {
	url := fmt.Sprintf("%s/session/device", c.baseURL)
	payload := openDevicePayload{
		Body: openDeviceBody{
			Device: deviceDescriptor{
				ID:   req.IDDevice,
				Name: req.NameDevice,
				User: req.UserDevice,
			},
			GroupID: req.GroupID,
		},
	}

	body, err := sendRequest[openDevicePayload, openDeviceResponse](c, ctx, http.MethodPost, url, &payload, "")
	if err != nil {
		return "", err
	}
	if body.Token == "" {
		return "", domain.NewRemoteServiceError("yappy did not return a token", nil)
	}
	return body.Token, nil
}

// CloseDevice closes the device session behind the token and returns its
// usage summary.
func (c *Client) CloseDevice(ctx context.Context, token string) (*application.DeviceSummary, error) {
	url := fmt.Sprintf("%s/session/device", c.baseURL)

	body, err := sendRequest[any, closeDeviceResponse](c, ctx, http.MethodDelete, url, nil, token)
	if err != nil {
		return nil, err
	}
	return &application.DeviceSummary{
		Transactions: body.Summary.Transactions,
		Amount:       body.Summary.Amount,
	}, nil
}

// GenerateQRCode requests a QR payment. The hash in the response is the QR
// payload itself.
func (c *Client) GenerateQRCode(ctx context.Context, req dto.PaymentRequest, token string) (*application.QRCodeResult, error) {
	url := fmt.Sprintf("%s/qr/generate/%s", c.baseURL, req.Type)
	payload := qrPayload{
		Body: qrPayloadBody{
			ChargeAmount: chargeAmount{
				SubTotal: req.SubTotal,
				Tax:      req.Tax,
				Tip:      req.Tip,
				Discount: req.Discount,
				Total:    req.Total,
			},
			OrderID:     req.OrderID,
			Description: req.Description,
		},
	}

	body, err := sendRequest[qrPayload, qrResponse](c, ctx, http.MethodPost, url, &payload, token)
	if err != nil {
		return nil, err
	}
	if body.Hash == "" || body.TransactionID == "" {
		return nil, domain.NewRemoteServiceError("invalid response from yappy: missing hash or transactionId", nil)
	}
	return &application.QRCodeResult{
		QRCodeURL:     body.Hash,
		TransactionID: body.TransactionID,
		Amount:        req.Total,
		ExpiresAt:     body.Date,
	}, nil
}

func (c *Client) GetTransaction(ctx context.Context, transactionID, token string) (*application.TransactionStatus, error) {
	url := fmt.Sprintf("%s/transaction/%s", c.baseURL, transactionID)

	body, err := sendRequest[any, transactionResponse](c, ctx, http.MethodGet, url, nil, token)
	if err != nil {
		return nil, err
	}
	return &application.TransactionStatus{
		TransactionID: transactionID,
		Status:        body.Status,
	}, nil
}

func (c *Client) CancelTransaction(ctx context.Context, transactionID, token string) (*application.TransactionCancellation, error) {
	url := fmt.Sprintf("%s/transaction/%s", c.baseURL, transactionID)

	resp, err := c.do(ctx, http.MethodPut, url, nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded envelope[transactionResponse]
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewRemoteServiceError("error decoding yappy response", err)
	}
	if err := checkStatus(resp.StatusCode, decoded.Status); err != nil {
		return nil, err
	}

	status := decoded.Body.Status
	if status == "" {
		status = "CANCELLED"
	}
	message := decoded.Status.text()
	if message == "" {
		message = "Transaction cancelled successfully"
	}
	return &application.TransactionCancellation{
		TransactionID: transactionID,
		Status:        status,
		Message:       message,
	}, nil
}

// sendRequest performs a call, enforces the business status check and decodes
// the response body.
func sendRequest[Req any, Resp any](c *Client, ctx context.Context, method, url string, reqBody *Req, token string) (*Resp, error) {
	var bodyReader *bytes.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, domain.NewRemoteServiceError("error marshalling request", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	resp, err := c.do(ctx, method, url, bodyReader, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded envelope[Resp]
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewRemoteServiceError("error decoding yappy response", err)
	}
	if err := checkStatus(resp.StatusCode, decoded.Status); err != nil {
		return nil, err
	}
	return &decoded.Body, nil
}

// do issues the HTTP request with the provider headers attached, translating
// transport failures into the domain taxonomy.
func (c *Client) do(ctx context.Context, method, url string, body *bytes.Reader, token string) (*http.Response, error) {
	var httpReq *http.Request
	var err error
	if body != nil {
		httpReq, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, domain.NewRemoteServiceError("error creating request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("secret-key", c.secretKey)
	if token != "" {
		httpReq.Header.Set("authorization", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.NewTimeoutError("request timeout: yappy did not respond in time")
		}
		return nil, domain.NewRemoteServiceError("could not reach yappy", err)
	}
	return resp, nil
}

// checkStatus enforces both the HTTP status and the provider's own success
// code.
func checkStatus(httpStatus int, status statusBlock) error {
	if httpStatus < 200 || httpStatus >= 300 || status.Code != successCode {
		message := status.text()
		if message == "" {
			message = fmt.Sprintf("yappy returned status %d", httpStatus)
		}
		return domain.NewRemoteServiceError(message, &ProviderError{
			Code:       status.Code,
			Message:    message,
			StatusCode: httpStatus,
		})
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
