package ecs

import (
	"time"

	"github.com/ecsprotocol/ecs/clients"
	"github.com/ecsprotocol/ecs/logger"
	"github.com/ecsprotocol/ecs/metrics"
)

type Option func(*ECS)

// WithDomain overrides the root domain lookup names are built under. The
// default is types.DefaultDomain.
func WithDomain(domain string) Option {
	return func(e *ECS) {
		e.domain = domain
	}
}

// WithTimeout overrides the default per-resolution timeout.
func WithTimeout(t time.Duration) Option {
	return func(e *ECS) {
		e.timeout = t
	}
}

func WithLogger(l logger.Logger) Option {
	return func(e *ECS) {
		e.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(e *ECS) {
		e.rec = r
	}
}

// WithNotFoundMatcher replaces the predicate that classifies upstream
// errors as "record or resolver absent". The default matches the phrasings
// of the bundled chain client; swap it when wrapping a client with a
// different error vocabulary.
func WithNotFoundMatcher(m clients.NotFoundMatcher) Option {
	return func(e *ECS) {
		e.notFound = m
	}
}
