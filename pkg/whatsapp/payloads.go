package whatsapp

// Button is one tappable reply button (the API allows at most three)
type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Row is one entry of an interactive list
type Row struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Outbound message payload shapes, mirroring the Cloud API wire format

type payload struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *textBody        `json:"text,omitempty"`
	Image            *imageBody       `json:"image,omitempty"`
	Interactive      *interactiveBody `json:"interactive,omitempty"`
}

type textBody struct {
	Body string `json:"body"`
}

type imageBody struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type interactiveBody struct {
	Type   string      `json:"type"`
	Header *headerBody `json:"header,omitempty"`
	Body   *textBody   `json:"body"`
	Action *actionBody `json:"action"`
}

type headerBody struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type actionBody struct {
	Buttons  []buttonReply `json:"buttons,omitempty"`
	Button   string        `json:"button,omitempty"`
	Sections []section     `json:"sections,omitempty"`
}

type buttonReply struct {
	Type  string `json:"type"`
	Reply Button `json:"reply"`
}

type section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Inbound webhook envelope shapes

// WebhookEnvelope is the outermost Graph webhook body
type WebhookEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []InboundMessage `json:"messages"`
				Contacts []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// InboundMessage is one received message inside the webhook envelope
type InboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Interactive *struct {
		Type      string `json:"type"`
		ListReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"list_reply,omitempty"`
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply,omitempty"`
	} `json:"interactive,omitempty"`
}

// FirstMessage digs the first inbound message out of the envelope,
// returning false when the webhook carries none (status updates etc.)
func (e *WebhookEnvelope) FirstMessage() (InboundMessage, bool) {
	for _, entry := range e.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return change.Value.Messages[0], true
			}
		}
	}
	return InboundMessage{}, false
}
