package messaging

import (
	"encoding/json"
	"fmt"
)

// Publisher sends raw payloads to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// JSONPublisher encodes values as JSON before handing them to a Publisher.
type JSONPublisher struct {
	pub Publisher
}

func NewJSONPublisher(pub Publisher) *JSONPublisher {
	return &JSONPublisher{pub: pub}
}

func (p *JSONPublisher) PublishJSON(subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", subject, err)
	}
	return p.pub.Publish(subject, data)
}
