package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rajgh7/surprisevista/internal/domain/product"
	"github.com/rajgh7/surprisevista/internal/domain/session"
)

// businessContext frames every generative call. The grounding clause is a
// correctness requirement: the text backend has no catalog awareness of
// its own, so it must be forbidden from inventing products.
const businessContext = `You are the SurpriseVista customer support assistant.
Tone: friendly, helpful, concise.
Scope: gifting, product recommendations, orders, shipping, returns, payments.
If the user asks about an order, ask for the order code if not provided.
Only mention products that appear in the SystemProducts list below; never
invent, rename or price a product that is not in it. If SystemProducts is
empty, ask what the user is looking for instead of naming any product.
Always avoid giving legal or medical advice.`

const unavailableReply = "Sorry - the assistant is temporarily unavailable. I can still help with orders and product lookups. Please try again."

// buildFallbackPrompt assembles the grounded prompt for a free-form turn
func buildFallbackPrompt(sess *session.Session, text string) string {
	grounding, err := json.Marshal(productSnippets(sess.LastShown))
	if err != nil {
		grounding = []byte("[]")
	}

	var b strings.Builder
	b.WriteString(businessContext)
	b.WriteString("\n\nSystemProducts: ")
	b.Write(grounding)
	b.WriteString("\n\nUser: ")
	b.WriteString(text)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// buildBlurbPrompt asks for a one-line intro to a recommendation list
func buildBlurbPrompt(text string, items []product.Summary) string {
	grounding, err := json.Marshal(productSnippets(items))
	if err != nil {
		grounding = []byte("[]")
	}
	return fmt.Sprintf("%s\n\nSystemProducts: %s\n\nThe user asked: %q. Write one short, warm sentence introducing these gift picks. Do not list the products themselves.\n\nAssistant:",
		businessContext, grounding, text)
}

type productSnippet struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

func productSnippets(items []product.Summary) []productSnippet {
	snippets := make([]productSnippet, 0, len(items))
	for _, p := range items {
		snippets = append(snippets, productSnippet{ID: p.ID, Title: p.Title, Price: p.Price, Category: p.Category})
	}
	return snippets
}
