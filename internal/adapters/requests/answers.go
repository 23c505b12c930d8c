package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/ports"
)

const (
	MsgNotFound    = "not found"
	MsgUnsupported = "unsupported request type"
)

type BusAnswer struct {
	RequestID       int      `json:"request_id"`
	Curvature       *float64 `json:"curvature"`
	RouteLength     int      `json:"route_length"`
	StopCount       int      `json:"stop_count"`
	UniqueStopCount int      `json:"unique_stop_count"`
}

type StopAnswer struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

type RouteAnswer struct {
	RequestID int               `json:"request_id"`
	TotalTime float64           `json:"total_time"`
	Items     []RouteItemAnswer `json:"items"`
}

type RouteItemAnswer struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

type ErrorAnswer struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

func NewBusAnswer(id int, st domain.BusStat) BusAnswer {
	ans := BusAnswer{
		RequestID:       id,
		RouteLength:     st.RoadLength,
		StopCount:       st.StopCount,
		UniqueStopCount: st.UniqueStopCount,
	}
	if st.CurvatureDefined() {
		c := st.Curvature
		ans.Curvature = &c
	}
	return ans
}

func NewStopAnswer(id int, st domain.StopStat) StopAnswer {
	buses := st.Buses
	if buses == nil {
		buses = []string{}
	}
	return StopAnswer{RequestID: id, Buses: buses}
}

func NewRouteAnswer(id int, res domain.RouteResult) RouteAnswer {
	items := make([]RouteItemAnswer, 0, len(res.Items))
	for _, it := range res.Items {
		item := RouteItemAnswer{Type: it.Kind.String(), Time: it.Minutes}
		if it.Kind == domain.WaitItem {
			item.StopName = it.StopName
		} else {
			item.Bus = it.BusName
			item.SpanCount = it.SpanCount
		}
		items = append(items, item)
	}
	return RouteAnswer{RequestID: id, TotalTime: res.TotalMinutes, Items: items}
}

// Answer resolves a single stat request. Misses become an ErrorAnswer; the
// returned error is reserved for failures of the query side itself.
func Answer(ctx context.Context, q ports.TransportQueries, req StatRequest) (any, error) {
	switch req.Type {
	case TypeBus:
		st, ok := q.BusStat(ctx, req.Name)
		if !ok {
			return ErrorAnswer{RequestID: req.ID, ErrorMessage: MsgNotFound}, nil
		}
		return NewBusAnswer(req.ID, st), nil

	case TypeStop:
		st := q.StopStat(ctx, req.Name)
		if !st.Found {
			return ErrorAnswer{RequestID: req.ID, ErrorMessage: MsgNotFound}, nil
		}
		return NewStopAnswer(req.ID, st), nil

	case TypeRoute:
		res, err := q.Route(ctx, req.From, req.To)
		if errors.Is(err, catalogue.ErrUnknownStop) {
			return ErrorAnswer{RequestID: req.ID, ErrorMessage: MsgNotFound}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("answer request id=%d: %w", req.ID, err)
		}
		if !res.Found {
			return ErrorAnswer{RequestID: req.ID, ErrorMessage: MsgNotFound}, nil
		}
		return NewRouteAnswer(req.ID, res), nil

	default:
		return ErrorAnswer{RequestID: req.ID, ErrorMessage: MsgUnsupported}, nil
	}
}

// AnswerAll resolves requests in order.
func AnswerAll(ctx context.Context, q ports.TransportQueries, reqs []StatRequest) ([]any, error) {
	out := make([]any, 0, len(reqs))
	for _, req := range reqs {
		ans, err := Answer(ctx, q, req)
		if err != nil {
			return nil, err
		}
		out = append(out, ans)
	}
	return out, nil
}

func WriteAnswers(w io.Writer, answers []any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(answers); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	return nil
}
