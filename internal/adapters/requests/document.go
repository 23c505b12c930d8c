package requests

import (
	"encoding/json"
	"fmt"
	"io"

	"transport-catalogue-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
	TypeMap   = "Map"
)

// Document is the top-level JSON input: base data, routing settings and queries.
type Document struct {
	BaseRequests    []BaseRequest           `json:"base_requests" validate:"dive"`
	RoutingSettings *domain.RoutingSettings `json:"routing_settings"`
	StatRequests    []StatRequest           `json:"stat_requests"`
	Serialization   *SerializationSettings  `json:"serialization_settings"`
}

// SerializationSettings names the database file used between make_base and
// process_requests runs.
type SerializationSettings struct {
	File string `json:"file" validate:"required"`
}

// BaseRequest describes either a stop or a bus; fields not used by its type are ignored.
type BaseRequest struct {
	Type string `json:"type" validate:"oneof=Stop Bus"`
	Name string `json:"name" validate:"required"`

	Latitude      float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64        `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int `json:"road_distances" validate:"omitempty,dive,gte=0"`

	Stops       []string `json:"stops"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

var validate = validator.New()

// ParseDocument decodes and validates a request document.
func ParseDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse document: decode json: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
