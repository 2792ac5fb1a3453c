package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// WhatsAppClient posts messages to a WhatsApp relay service.
type WhatsAppClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	phone      string
}

func NewWhatsAppClient(baseURL, token, phone string) *WhatsAppClient {
	return &WhatsAppClient{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		phone:      phone,
	}
}

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (c *WhatsAppClient) SendText(ctx context.Context, message string) error {
	body, err := json.Marshal(sendTextRequest{Phone: c.phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/message/send-text", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		return &StatusError{Code: res.StatusCode, Body: string(raw)}
	}
	return nil
}
