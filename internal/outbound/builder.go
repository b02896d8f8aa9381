package outbound

// DefaultTemplate is sent when a request carries neither text nor a template name.
const DefaultTemplate = "hello_world"

// DefaultLanguageCode is the locale attached to every template send.
const DefaultLanguageCode = "en_US"

const messagingProduct = "whatsapp"

// Payload is the JSON body accepted by the platform's send-message endpoint.
// Exactly one of Text or Template is set.
type Payload struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             *Text     `json:"text,omitempty"`
	Template         *Template `json:"template,omitempty"`
}

// Text is the body of a free-text message.
type Text struct {
	Body string `json:"body"`
}

// Template names a pre-approved message template.
type Template struct {
	Name     string   `json:"name"`
	Language Language `json:"language"`
}

// Language selects the template translation.
type Language struct {
	Code string `json:"code"`
}

// Build maps a send request onto the platform's wire payload. Non-empty text
// wins over a template name; with neither, DefaultTemplate is used.
func Build(to, text, templateName string) Payload {
	if text != "" {
		return Payload{
			MessagingProduct: messagingProduct,
			To:               to,
			Type:             "text",
			Text:             &Text{Body: text},
		}
	}

	if templateName == "" {
		templateName = DefaultTemplate
	}
	return Payload{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             "template",
		Template: &Template{
			Name:     templateName,
			Language: Language{Code: DefaultLanguageCode},
		},
	}
}
