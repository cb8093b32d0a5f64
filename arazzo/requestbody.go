package arazzo

import "encoding/json"

// RequestBody represents the request body passed to the operation referenced by a step.
type RequestBody struct {
	// ContentType is the content type of the request body.
	ContentType *string `yaml:"contentType,omitempty"`
	// Payload is the JSON-shaped payload, possibly containing embedded runtime expressions.
	Payload any `yaml:"payload,omitempty"`
}

// PayloadText returns the payload rendered as JSON text for expression
// scanning. Unencodable payloads render as the empty string; scanning an
// empty string simply finds no expressions.
func (r *RequestBody) PayloadText() string {
	if r == nil || r.Payload == nil {
		return ""
	}

	if s, ok := r.Payload.(string); ok {
		return s
	}

	data, err := json.Marshal(r.Payload)
	if err != nil {
		return ""
	}

	return string(data)
}
