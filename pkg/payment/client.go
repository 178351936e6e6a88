package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Header names sent with every request.
const (
	HeaderMerchantID = "X-Merchant-Id"
	HeaderTimestamp  = "X-Timestamp"
	HeaderSignature  = "X-Signature"
)

// Client is a minimal HTTP client for the payments gateway that settles
// marketplace purchases.
type Client struct {
	httpClient *http.Client
	baseURL    string
	merchantID string
	secret     string
	debug      bool
	nowFn      func() time.Time
}

// NewClient constructs a new gateway client.
func NewClient(baseURL, merchantID, secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		merchantID: merchantID,
		secret:     secret,
		debug:      os.Getenv("ENV") == "development",
		nowFn:      time.Now,
	}
}

// Sign returns hex(HMAC-SHA256(secret, "<unix>.<body>")).
func Sign(secret string, unix int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(unix, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Transfer moves funds from the buyer to the seller. Reference doubles as the
// idempotency key on the gateway side.
func (c *Client) Transfer(ctx context.Context, req *TransferRequest) (*TransferResponse, error) {
	var wrapper TransferResponseWrapper
	if err := c.doRequest(ctx, "/transfers", req, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Data, nil
}

// doRequest performs a signed JSON POST and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.baseURL+endpoint).
			RawJSON("request", payload).
			Msg("[PAYMENT] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	ts := c.nowFn().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderMerchantID, c.merchantID)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderSignature, Sign(c.secret, ts, payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[PAYMENT] Incoming response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	// 4xx bodies still carry status and message.
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
