package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

const (
	ModeDemo = "demo"
	ModeLive = "live"
)

var ErrUnknownMode = errors.New("unknown client mode")

type ClientOptions struct {
	Mode   string
	Logger *zap.Logger

	// Demo mode.
	Store       domain.KeyValueStore
	DemoOptions []DemoOption

	// Live mode.
	LiveURL     string
	LiveToken   string
	LiveTimeout time.Duration
}

// NewClient picks the implementation once; callers only see domain.Client.
func NewClient(opts ClientOptions) (domain.Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Mode {
	case ModeDemo:
		if opts.Store == nil {
			return nil, errors.New("demo mode requires a store")
		}
		demoOpts := append([]DemoOption{WithLogger(logger.Named("demo"))}, opts.DemoOptions...)
		return NewDemoStore(opts.Store, demoOpts...), nil
	case ModeLive:
		if opts.LiveURL == "" {
			return nil, errors.New("live mode requires a base url")
		}
		return NewLiveClient(opts.LiveURL, opts.LiveToken, opts.LiveTimeout, logger.Named("live")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
}
