package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jessevdk/go-flags"

	"github.com/goccy/datefmt/server"
	"github.com/goccy/datefmt/types"
)

type option struct {
	Port              uint16           `description:"specify the HTTP port number" long:"port" default:"9060"`
	GRPCPort          uint16           `description:"specify the gRPC port number" long:"grpc-port" default:"9061"`
	LogLevel          server.LogLevel  `description:"specify the log level (debug/info/warn/error)" long:"log-level" default:"error"`
	LogFormat         server.LogFormat `description:"specify the log format (console/json)" long:"log-format" default:"console"`
	Location          string           `description:"specify the IANA time zone used for wall-clock fields. if not specified, the host zone is used" long:"location"`
	LegacyOffsetBound bool             `description:"accept timezone offsets beyond 11 hours when parsing" long:"legacy-offset-bound"`
	Config            string           `description:"specify the path to the YAML file that contains the engine config" long:"config"`
	Version           bool             `description:"print version" long:"version" short:"v"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
)

var (
	version  string
	revision string
)

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	args, opt, err := parseOpt(os.Args[1:])
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[datefmt-server] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if err := runServer(args, opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}

func parseOpt(osArgs []string) ([]string, option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	args, err := parser.ParseArgs(osArgs)
	return args, opt, err
}

// config builds the engine config given on the command line. A YAML file
// loaded afterwards overrides it.
func (opt option) config() *types.Config {
	cfg := types.NewConfig()
	cfg.Location = opt.Location
	cfg.LegacyOffsetBound = opt.LegacyOffsetBound
	return cfg
}

func runServer(args []string, opt option) error {
	if opt.Version {
		fmt.Fprintf(os.Stdout, "version: %s (%s)\n", version, revision)
		return nil
	}
	dateServer, err := server.New()
	if err != nil {
		return err
	}
	if err := dateServer.SetLogLevel(opt.LogLevel); err != nil {
		return err
	}
	if err := dateServer.SetLogFormat(opt.LogFormat); err != nil {
		return err
	}
	sources := []server.Source{server.StructSource(opt.config())}
	if opt.Config != "" {
		sources = append(sources, server.YAMLSource(opt.Config))
	}
	if err := dateServer.Load(sources...); err != nil {
		return err
	}

	ctx := context.Background()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-interrupt
		fmt.Fprintf(os.Stdout, "[datefmt-server] receive %s. shutdown gracefully\n", s)
		if err := dateServer.Stop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "[datefmt-server] failed to stop: %v\n", err)
		}
	}()

	httpAddr := fmt.Sprintf("0.0.0.0:%d", opt.Port)
	grpcAddr := fmt.Sprintf("0.0.0.0:%d", opt.GRPCPort)
	fmt.Fprintf(os.Stdout, "[datefmt-server] listening at %s (http) and %s (grpc)\n", httpAddr, grpcAddr)
	if err := dateServer.Serve(ctx, httpAddr, grpcAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
