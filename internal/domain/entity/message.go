package entity

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Message roles used on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part types used on the wire.
const (
	PartTypeText  = "text"
	PartTypeImage = "image_url"
)

// ChatMessage is one turn of a conversation as sent by the client and
// forwarded to the completion gateway.
type ChatMessage struct {
	Role    string         `json:"role"` // system, user, assistant
	Content MessageContent `json:"content"`
}

// MessageContent is a string-or-parts union: plain text for ordinary
// messages, an ordered part list when the message carries images.
// Exactly one of Text/Parts is meaningful; Parts wins when non-nil.
type MessageContent struct {
	Text  string
	Parts []ContentPart
}

// ContentPart is one typed segment of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"` // text, image_url
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference.
type ImageURL struct {
	URL string `json:"url"`
}

// TextContent builds a plain-text MessageContent.
func TextContent(text string) MessageContent {
	return MessageContent{Text: text}
}

// UnmarshalJSON accepts either a JSON string or an array of typed parts.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty message content")
	}
	switch data[0] {
	case '"':
		return sonic.Unmarshal(data, &c.Text)
	case '[':
		return sonic.Unmarshal(data, &c.Parts)
	case 'n': // null
		*c = MessageContent{}
		return nil
	default:
		return fmt.Errorf("message content must be a string or an array of parts")
	}
}

// MarshalJSON emits the same form that was received: the part list when
// present, the plain string otherwise.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return sonic.Marshal(c.Parts)
	}
	return sonic.Marshal(c.Text)
}

// IsMultimodal reports whether the content uses the part-list form.
func (c MessageContent) IsMultimodal() bool {
	return c.Parts != nil
}

// PlainText returns the textual content: the string itself, or the first
// text part for multimodal content. Empty when neither exists.
func (c MessageContent) PlainText() string {
	if c.Parts == nil {
		return c.Text
	}
	for _, p := range c.Parts {
		if p.Type == PartTypeText {
			return p.Text
		}
	}
	return ""
}

// HasImage reports whether any part references an image.
func (c MessageContent) HasImage() bool {
	for _, p := range c.Parts {
		if p.Type == PartTypeImage {
			return true
		}
	}
	return false
}

// LastUserText returns the plain-text content of the most recent
// user-authored message, or "" when there is none.
func LastUserText(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content.PlainText()
		}
	}
	return ""
}

// HasImages reports whether any message in the list carries an image part.
func HasImages(messages []ChatMessage) bool {
	for _, m := range messages {
		if m.Content.HasImage() {
			return true
		}
	}
	return false
}
