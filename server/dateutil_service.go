package server

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/goccy/datefmt/dateutil"
)

// dateUtilServer is the gRPC face of the engine. Format and Parse take a
// struct with an "input" (string or epoch milliseconds) and an optional
// "pattern".
type dateUtilServer interface {
	Format(context.Context, *structpb.Struct) (*structpb.Value, error)
	Parse(context.Context, *structpb.Struct) (*timestamppb.Timestamp, error)
	FormatTimestamp(context.Context, *timestamppb.Timestamp) (*structpb.Value, error)
}

type dateUtilService struct {
	server *Server
}

func registerDateUtilServer(grpcServer *grpc.Server, s *Server) {
	grpcServer.RegisterService(&dateUtilServiceDesc, &dateUtilService{server: s})
}

func (d *dateUtilService) Format(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	input, err := inputValue(req)
	if err != nil {
		return nil, err
	}
	formatted, err := d.server.engine.Format(input, d.server.pattern(patternValue(req)))
	if err != nil {
		return nil, statusError(err)
	}
	return structpb.NewStringValue(formatted), nil
}

func (d *dateUtilService) Parse(ctx context.Context, req *structpb.Struct) (*timestamppb.Timestamp, error) {
	input, err := inputValue(req)
	if err != nil {
		return nil, err
	}
	engine := d.server.engine
	parse := engine.Parse
	if pattern := patternValue(req); pattern != "" {
		parse = func(v dateutil.Value) (time.Time, error) {
			return engine.ParseFormat(v, pattern)
		}
	}
	t, err := parse(input)
	if err != nil {
		return nil, statusError(err)
	}
	return timestamppb.New(t), nil
}

// FormatTimestamp renders req with the configured default pattern.
func (d *dateUtilService) FormatTimestamp(ctx context.Context, req *timestamppb.Timestamp) (*structpb.Value, error) {
	input, err := dateutil.ValueOf(req)
	if err != nil {
		return nil, statusError(err)
	}
	formatted, err := d.server.engine.Format(input, d.server.pattern(""))
	if err != nil {
		return nil, statusError(err)
	}
	return structpb.NewStringValue(formatted), nil
}

func inputValue(req *structpb.Struct) (dateutil.Value, error) {
	field, exists := req.GetFields()["input"]
	if !exists {
		return dateutil.Value{}, status.Error(codes.InvalidArgument, "input is required")
	}
	v, err := dateutil.ValueOf(field.AsInterface())
	if err != nil {
		return dateutil.Value{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return v, nil
}

func patternValue(req *structpb.Struct) string {
	return req.GetFields()["pattern"].GetStringValue()
}

func statusError(err error) error {
	if errors.Is(err, dateutil.ErrNoValue) || errors.Is(err, dateutil.ErrNaN) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func unaryHandler(method string, newRequest func() proto.Message, call func(dateUtilServer, context.Context, interface{}) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newRequest()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(dateUtilServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(dateUtilServer), ctx, req)
			})
		},
	}
}

var dateUtilServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*dateUtilServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Format",
			func() proto.Message { return new(structpb.Struct) },
			func(srv dateUtilServer, ctx context.Context, req interface{}) (interface{}, error) {
				return srv.Format(ctx, req.(*structpb.Struct))
			},
		),
		unaryHandler("Parse",
			func() proto.Message { return new(structpb.Struct) },
			func(srv dateUtilServer, ctx context.Context, req interface{}) (interface{}, error) {
				return srv.Parse(ctx, req.(*structpb.Struct))
			},
		),
		unaryHandler("FormatTimestamp",
			func() proto.Message { return new(timestamppb.Timestamp) },
			func(srv dateUtilServer, ctx context.Context, req interface{}) (interface{}, error) {
				return srv.FormatTimestamp(ctx, req.(*timestamppb.Timestamp))
			},
		),
	},
	Streams: []grpc.StreamDesc{},
}

// DateUtilClient calls the DateUtil gRPC service.
type DateUtilClient struct {
	cc grpc.ClientConnInterface
}

func NewDateUtilClient(cc grpc.ClientConnInterface) *DateUtilClient {
	return &DateUtilClient{cc: cc}
}

func (c *DateUtilClient) Format(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Value, error) {
	out := new(structpb.Value)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Format", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DateUtilClient) Parse(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*timestamppb.Timestamp, error) {
	out := new(timestamppb.Timestamp)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Parse", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DateUtilClient) FormatTimestamp(ctx context.Context, in *timestamppb.Timestamp, opts ...grpc.CallOption) (*structpb.Value, error) {
	out := new(structpb.Value)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/FormatTimestamp", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
