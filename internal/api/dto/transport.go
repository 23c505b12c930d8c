package dto

import "transport-catalogue-service/internal/adapters/requests"

type BusResponse struct {
	Name            string   `json:"name"`
	StopCount       int      `json:"stop_count"`
	UniqueStopCount int      `json:"unique_stop_count"`
	RouteLength     int      `json:"route_length"`
	GeoLength       float64  `json:"geo_length"`
	Curvature       *float64 `json:"curvature"`
	MissingLegs     int      `json:"missing_legs"`
}

type StopResponse struct {
	Name  string   `json:"name"`
	Buses []string `json:"buses"`
}

type RouteItemResponse = requests.RouteItemAnswer

type RouteResponse struct {
	From      string              `json:"from"`
	To        string              `json:"to"`
	TotalTime float64             `json:"total_time"`
	Items     []RouteItemResponse `json:"items"`
}

type StatBatchRequest struct {
	StatRequests []requests.StatRequest `json:"stat_requests"`
}

type StatBatchResponse struct {
	Answers []any `json:"answers"`
}

type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}
