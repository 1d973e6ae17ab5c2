package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/goccy/datefmt/dateutil"
	"github.com/goccy/datefmt/types"
)

type Server struct {
	Handler      http.Handler
	config       *types.Config
	engine       *dateutil.Engine
	validate     *validator.Validate
	loggerConfig *zap.Config
	logger       *zap.Logger
	httpServer   *http.Server
	grpcServer   *grpc.Server
	healthServer *health.Server
}

func New() (*Server, error) {
	server := &Server{
		config:   types.NewConfig(),
		validate: types.NewValidator(),
	}
	server.loggerConfig = &zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.ErrorLevel),
		Development:       false,
		Encoding:          "console",
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if _, err := server.loggerConfig.Build(); err != nil {
		return nil, fmt.Errorf("invalid default logger config: %w", err)
	}
	server.logger = zap.NewNop()
	if err := server.SetConfig(server.config); err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	for _, handler := range handlers {
		r.Handle(handler.Path, handler.Handler).Methods(handler.HTTPMethod)
	}
	r.PathPrefix("/").Handler(&defaultHandler{})
	r.Use(recoveryMiddleware(server))
	r.Use(loggerMiddleware(server))
	r.Use(accessLogMiddleware())
	r.Use(decompressMiddleware())
	r.Use(withServerMiddleware(server))
	server.Handler = r
	return server, nil
}

// Engine returns the engine built from the current config.
func (s *Server) Engine() *dateutil.Engine {
	return s.engine
}

func (s *Server) Config() types.Config {
	return *s.config
}

// SetConfig validates cfg and rebuilds the engine from it. It must be
// called before Serve.
func (s *Server) SetConfig(cfg *types.Config) error {
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	loc, err := cfg.LoadLocation()
	if err != nil {
		return err
	}
	clock, err := cfg.Clock()
	if err != nil {
		return err
	}
	s.config = cfg
	s.engine = dateutil.New(
		dateutil.WithClock(clock),
		dateutil.WithLocation(loc),
		dateutil.WithLogger(s.logger),
		dateutil.WithLegacyOffsetBound(cfg.LegacyOffsetBound),
	)
	return nil
}

func (s *Server) pattern(pattern string) string {
	if pattern != "" {
		return pattern
	}
	if s.config.DefaultPattern != "" {
		return s.config.DefaultPattern
	}
	return dateutil.DefaultPattern
}

type LogLevel string

const (
	LogLevelUnknown LogLevel = "unknown"
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarn    LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

func (s *Server) SetLogLevel(level LogLevel) error {
	var atomicLevel zap.AtomicLevel
	switch level {
	case LogLevelDebug:
		atomicLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case LogLevelInfo:
		atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelWarn:
		atomicLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelError:
		atomicLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelFatal:
		atomicLevel = zap.NewAtomicLevelAt(zap.FatalLevel)
	default:
		return fmt.Errorf("unexpected log level %s", level)
	}
	s.loggerConfig.Level = atomicLevel
	return s.rebuildLogger()
}

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

func (s *Server) SetLogFormat(format LogFormat) error {
	switch format {
	case LogFormatConsole:
		s.loggerConfig.Encoding = "console"
	case LogFormatJSON:
		s.loggerConfig.Encoding = "json"
	default:
		return fmt.Errorf("unexpected log format %s", format)
	}
	return s.rebuildLogger()
}

func (s *Server) rebuildLogger() error {
	logger, err := s.loggerConfig.Build()
	if err != nil {
		return err
	}
	s.logger = logger
	return s.SetConfig(s.config)
}

func (s *Server) Load(sources ...Source) error {
	for _, source := range sources {
		if err := source(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) newGRPCServer() *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(s.accessLogInterceptor))
	registerDateUtilServer(grpcServer, s)
	s.healthServer = registerHealthServer(grpcServer)
	s.grpcServer = grpcServer
	return grpcServer
}

func (s *Server) Serve(ctx context.Context, httpAddr, grpcAddr string) error {
	httpServer := &http.Server{
		Handler:      s.Handler,
		Addr:         httpAddr,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	s.httpServer = httpServer
	grpcServer := s.newGRPCServer()

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return err
	}
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return err
	}

	var eg errgroup.Group
	eg.Go(func() error { return grpcServer.Serve(grpcListener) })
	eg.Go(func() error { return httpServer.Serve(httpListener) })
	return eg.Wait()
}

func (s *Server) Stop(ctx context.Context) error {
	defer s.logger.Sync()

	if s.healthServer != nil {
		s.healthServer.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
