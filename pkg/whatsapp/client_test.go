package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{Token: "test-token", PhoneNumberID: "12345"})
	c.SetBaseURL(srv.URL)
	return c, srv
}

func TestSendText(t *testing.T) {
	var got map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendText(context.Background(), "+911234567890", "hello")
	require.NoError(t, err)

	assert.Equal(t, "whatsapp", got["messaging_product"])
	assert.Equal(t, "911234567890", got["to"])
	assert.Equal(t, "text", got["type"])
	text := got["text"].(map[string]interface{})
	assert.Equal(t, "hello", text["body"])
}

func TestSendButtons(t *testing.T) {
	var got map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SendButtons(context.Background(), "911234567890", "pick one", []Button{
		{ID: "view_cart", Title: "View cart"},
		{ID: "menu", Title: "Menu"},
	})
	require.NoError(t, err)

	assert.Equal(t, "interactive", got["type"])
	interactive := got["interactive"].(map[string]interface{})
	assert.Equal(t, "button", interactive["type"])

	action := interactive["action"].(map[string]interface{})
	buttons := action["buttons"].([]interface{})
	require.Len(t, buttons, 2)
	first := buttons[0].(map[string]interface{})
	assert.Equal(t, "reply", first["type"])
	assert.Equal(t, "view_cart", first["reply"].(map[string]interface{})["id"])
}

func TestSendInteractiveList(t *testing.T) {
	var got map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	})

	rows := []Row{
		{ID: "item_1", Title: "Mug", Description: "₹349"},
		{ID: "item_2", Title: "Hamper", Description: "₹499"},
	}
	err := client.SendInteractiveList(context.Background(), "911234567890", "Gift ideas", "Here you go", rows)
	require.NoError(t, err)

	interactive := got["interactive"].(map[string]interface{})
	assert.Equal(t, "list", interactive["type"])

	action := interactive["action"].(map[string]interface{})
	sections := action["sections"].([]interface{})
	require.Len(t, sections, 1)
	gotRows := sections[0].(map[string]interface{})["rows"].([]interface{})
	require.Len(t, gotRows, 2)
	assert.Equal(t, "item_1", gotRows[0].(map[string]interface{})["id"])
}

func TestSendFailsWithoutCredentials(t *testing.T) {
	c := NewClient(Config{})
	err := c.SendText(context.Background(), "911234567890", "hello")
	assert.ErrorIs(t, err, ErrMissingToken)

	c = NewClient(Config{Token: "x"})
	err = c.SendText(context.Background(), "911234567890", "hello")
	assert.ErrorIs(t, err, ErrMissingPhoneID)
}

func TestSendSurfacesAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"bad recipient"}}`)
	})

	err := client.SendText(context.Background(), "911234567890", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "bad recipient")
}

func TestFirstMessage(t *testing.T) {
	raw := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "911234567890",
						"type": "text",
						"text": {"body": "show me gifts"}
					}]
				}
			}]
		}]
	}`

	var env WebhookEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	msg, ok := env.FirstMessage()
	require.True(t, ok)
	assert.Equal(t, "911234567890", msg.From)
	require.NotNil(t, msg.Text)
	assert.Equal(t, "show me gifts", msg.Text.Body)
}

func TestFirstMessageStatusOnlyDelivery(t *testing.T) {
	var env WebhookEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"entry":[{"changes":[{"value":{}}]}]}`), &env))

	_, ok := env.FirstMessage()
	assert.False(t, ok)
}

func TestFirstMessageListReply(t *testing.T) {
	raw := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"from": "911234567890",
						"type": "interactive",
						"interactive": {
							"type": "list_reply",
							"list_reply": {"id": "item_2", "title": "Hamper"}
						}
					}]
				}
			}]
		}]
	}`

	var env WebhookEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	msg, ok := env.FirstMessage()
	require.True(t, ok)
	require.NotNil(t, msg.Interactive)
	require.NotNil(t, msg.Interactive.ListReply)
	assert.Equal(t, "item_2", msg.Interactive.ListReply.ID)
}
