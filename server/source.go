package server

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/goccy/datefmt/types"
)

// Source overlays settings onto the server config. Sources passed to Load
// are applied in order, so later sources win.
type Source func(*Server) error

func YAMLSource(path string) Source {
	return func(s *Server) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cfg := s.Config()
		dec := yaml.NewDecoder(
			bytes.NewBuffer(content),
			yaml.Validator(s.validate),
			yaml.Strict(),
		)
		if err := dec.Decode(&cfg); err != nil {
			return errors.New(yaml.FormatError(err, false, true))
		}
		return s.SetConfig(&cfg)
	}
}

func JSONSource(path string) Source {
	return func(s *Server) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cfg := s.Config()
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return s.SetConfig(&cfg)
	}
}

func StructSource(cfg *types.Config) Source {
	return func(s *Server) error {
		return s.SetConfig(cfg)
	}
}
