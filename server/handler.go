package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/goccy/datefmt/dateutil"
	"github.com/goccy/datefmt/types"
)

type handler struct {
	HTTPMethod string
	Path       string
	Handler    http.Handler
}

var handlers = []*handler{
	{HTTPMethod: "GET", Path: "/v1/now", Handler: &nowHandler{}},
	{HTTPMethod: "POST", Path: "/v1/format", Handler: &formatHandler{}},
	{HTTPMethod: "POST", Path: "/v1/parse", Handler: &parseHandler{}},
	{HTTPMethod: "POST", Path: "/v1/add", Handler: &addHandler{}},
	{HTTPMethod: "POST", Path: "/v1/distance", Handler: &distanceHandler{}},
	{HTTPMethod: "POST", Path: "/v1/dayOfYear", Handler: &dayOfYearHandler{}},
	{HTTPMethod: "POST", Path: "/v1/daysOfMonth", Handler: &daysOfMonthHandler{}},
	{HTTPMethod: "POST", Path: "/v1/moment", Handler: &momentHandler{}},
}

// decodeRequest reads a JSON body into v and validates it.
func decodeRequest(r *http.Request, v interface{}) *ServerError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errInvalid(fmt.Sprintf("failed to decode request: %s", err))
	}
	if err := serverFromContext(r.Context()).validate.Struct(v); err != nil {
		return errInvalid(err.Error())
	}
	return nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) {
	b, err := json.Marshal(response)
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// noValueReason turns an engine failure into the reason reported next to a
// null result. Other errors are returned unchanged.
func noValueReason(err error) (string, error) {
	if errors.Is(err, dateutil.ErrNoValue) || errors.Is(err, dateutil.ErrNaN) {
		return err.Error(), nil
	}
	return "", err
}

type defaultHandler struct{}

func (h *defaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	errorResponse(r.Context(), w, errNotFound(fmt.Sprintf("%s %s is not found", r.Method, r.URL.Path)))
}

type nowHandler struct{}

func (h *nowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.Handle(ctx, &nowRequest{
		server:  serverFromContext(ctx),
		pattern: r.URL.Query().Get("pattern"),
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type nowRequest struct {
	server  *Server
	pattern string
}

func (h *nowHandler) Handle(ctx context.Context, r *nowRequest) (*types.TimestampResponse, error) {
	now := r.server.engine.Now()
	formatted, err := r.server.engine.Format(dateutil.TimeValue(now), r.server.pattern(r.pattern))
	if err != nil {
		return nil, err
	}
	res := types.NewTimestampResponse(now)
	res.Formatted = &formatted
	return res, nil
}

type formatHandler struct{}

func (h *formatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.FormatRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &formatRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type formatRequest struct {
	server *Server
	req    *types.FormatRequest
}

func (h *formatHandler) Handle(ctx context.Context, r *formatRequest) (*types.FormatResponse, error) {
	formatted, err := r.server.engine.Format(r.req.Input.Value(), r.server.pattern(r.req.Pattern))
	if err != nil {
		reason, err := noValueReason(err)
		if err != nil {
			return nil, err
		}
		return &types.FormatResponse{Reason: reason}, nil
	}
	return &types.FormatResponse{Formatted: &formatted}, nil
}

type parseHandler struct{}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.ParseRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &parseRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type parseRequest struct {
	server *Server
	req    *types.ParseRequest
}

func (h *parseHandler) Handle(ctx context.Context, r *parseRequest) (*types.TimestampResponse, error) {
	engine := r.server.engine
	parse := engine.Parse
	if r.req.Pattern != "" {
		parse = func(v dateutil.Value) (time.Time, error) {
			return engine.ParseFormat(v, r.req.Pattern)
		}
	}
	t, err := parse(r.req.Input.Value())
	return timestampResponse(t, err)
}

func timestampResponse(t time.Time, err error) (*types.TimestampResponse, error) {
	if err != nil {
		reason, err := noValueReason(err)
		if err != nil {
			return nil, err
		}
		return &types.TimestampResponse{Reason: reason}, nil
	}
	return types.NewTimestampResponse(t), nil
}

type addHandler struct{}

func (h *addHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.AddRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &addRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type addRequest struct {
	server *Server
	req    *types.AddRequest
}

func (h *addHandler) Handle(ctx context.Context, r *addRequest) (*types.TimestampResponse, error) {
	return timestampResponse(r.server.engine.Add(r.req.Input.Value(), r.req.Amount, dateutil.Unit(r.req.Unit)))
}

type distanceHandler struct{}

func (h *distanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.DistanceRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &distanceRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type distanceRequest struct {
	server *Server
	req    *types.DistanceRequest
}

func (h *distanceHandler) Handle(ctx context.Context, r *distanceRequest) (*types.DistanceResponse, error) {
	distance, err := r.server.engine.Distance(r.req.From.Value(), r.req.To.Value(), dateutil.Unit(r.req.Unit))
	if err != nil {
		reason, err := noValueReason(err)
		if err != nil {
			return nil, err
		}
		return &types.DistanceResponse{Reason: reason}, nil
	}
	return &types.DistanceResponse{Distance: &distance}, nil
}

type dayOfYearHandler struct{}

func (h *dayOfYearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.CalendarRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &calendarRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

type calendarRequest struct {
	server *Server
	req    *types.CalendarRequest
}

func (h *dayOfYearHandler) Handle(ctx context.Context, r *calendarRequest) (*types.DayOfYearResponse, error) {
	t, err := r.server.engine.Parse(r.req.Input.Value())
	if err != nil {
		reason, err := noValueReason(err)
		if err != nil {
			return nil, err
		}
		return &types.DayOfYearResponse{Reason: reason}, nil
	}
	day := r.server.engine.DayOfYear(t)
	return &types.DayOfYearResponse{DayOfYear: &day}, nil
}

type daysOfMonthHandler struct{}

func (h *daysOfMonthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.CalendarRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &calendarRequest{
		server: serverFromContext(ctx),
		req:    &req,
	})
	if err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

func (h *daysOfMonthHandler) Handle(ctx context.Context, r *calendarRequest) (*types.DaysOfMonthResponse, error) {
	t, err := r.server.engine.Parse(r.req.Input.Value())
	if err != nil {
		reason, err := noValueReason(err)
		if err != nil {
			return nil, err
		}
		return &types.DaysOfMonthResponse{Reason: reason}, nil
	}
	days := r.server.engine.DaysOfMonth(t)
	return &types.DaysOfMonthResponse{DaysOfMonth: &days}, nil
}

type momentHandler struct{}

func (h *momentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req types.MomentRequest
	if err := decodeRequest(r, &req); err != nil {
		errorResponse(ctx, w, err)
		return
	}
	res, err := h.Handle(ctx, &req)
	if err != nil {
		errorResponse(ctx, w, errInvalid(err.Error()))
		return
	}
	encodeResponse(ctx, w, res)
}

func (h *momentHandler) Handle(ctx context.Context, r *types.MomentRequest) (*types.MomentResponse, error) {
	description, err := dateutil.Moment(r.Seconds, dateutil.MomentOptions{
		MinUnit: dateutil.Unit(r.MinUnit),
		MaxUnit: dateutil.Unit(r.MaxUnit),
		Full:    r.Full,
	})
	if err != nil {
		return nil, err
	}
	return &types.MomentResponse{Description: description}, nil
}
