// Package whatsapp is a client for the WhatsApp Cloud (Graph) messaging
// API: plain text, images, reply buttons and interactive lists.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const apiVersion = "v22.0"

var (
	ErrMissingToken   = errors.New("WHATSAPP_TOKEN not configured")
	ErrMissingPhoneID = errors.New("WHATSAPP_PHONE_NUMBER_ID not configured")
)

// Config holds the Cloud API credentials
type Config struct {
	Token         string
	PhoneNumberID string
	VerifyToken   string
	AdminPhone    string
	Timeout       time.Duration
}

// NewConfigFromEnv reads the Cloud API settings from the environment
func NewConfigFromEnv() Config {
	return Config{
		Token:         os.Getenv("WHATSAPP_TOKEN"),
		PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		VerifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		AdminPhone:    os.Getenv("WHATSAPP_ADMIN_PHONE"),
		Timeout:       20 * time.Second,
	}
}

// Client sends messages through the Graph API
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Graph API client from the config
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{
		cfg:        cfg,
		baseURL:    "https://graph.facebook.com",
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetBaseURL overrides the Graph API host, used by tests
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

// SendText sends a plain text message
func (c *Client) SendText(ctx context.Context, to, message string) error {
	return c.post(ctx, payload{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(to),
		Type:             "text",
		Text:             &textBody{Body: message},
	})
}

// SendImage sends an image by URL with an optional caption
func (c *Client) SendImage(ctx context.Context, to, imageURL, caption string) error {
	return c.post(ctx, payload{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(to),
		Type:             "image",
		Image:            &imageBody{Link: imageURL, Caption: caption},
	})
}

// SendButtons sends up to three reply buttons under a body text
func (c *Client) SendButtons(ctx context.Context, to, bodyText string, buttons []Button) error {
	replies := make([]buttonReply, 0, len(buttons))
	for _, b := range buttons {
		replies = append(replies, buttonReply{Type: "reply", Reply: b})
	}
	return c.post(ctx, payload{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(to),
		Type:             "interactive",
		Interactive: &interactiveBody{
			Type:   "button",
			Body:   &textBody{Body: bodyText},
			Action: &actionBody{Buttons: replies},
		},
	})
}

// SendInteractiveList sends a tappable list of rows under a header
func (c *Client) SendInteractiveList(ctx context.Context, to, headerText, bodyText string, rows []Row) error {
	return c.post(ctx, payload{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(to),
		Type:             "interactive",
		Interactive: &interactiveBody{
			Type:   "list",
			Header: &headerBody{Type: "text", Text: headerText},
			Body:   &textBody{Body: bodyText},
			Action: &actionBody{
				Button:   "View Options",
				Sections: []section{{Title: headerText, Rows: rows}},
			},
		},
	})
}

func (c *Client) post(ctx context.Context, p payload) error {
	if c.cfg.Token == "" {
		return ErrMissingToken
	}
	if c.cfg.PhoneNumberID == "" {
		return ErrMissingPhoneID
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, apiVersion, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building message request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling messages endpoint: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("messages endpoint returned %d: %s", res.StatusCode, string(raw))
	}
	return nil
}

// normalizePhone strips the leading plus sign the Graph API rejects
func normalizePhone(to string) string {
	return strings.TrimSpace(strings.ReplaceAll(to, "+", ""))
}
