// Package resolver implements the credential resolution engine: validate
// the request, construct the lookup name, race the upstream text-record
// read against a timeout, decode the value, and wrap everything in a
// result envelope. Batched resolution fans the same pipeline out over
// independent goroutines.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/ecsprotocol/ecs/clients"
	"github.com/ecsprotocol/ecs/logger"
	"github.com/ecsprotocol/ecs/metrics"
	"github.com/ecsprotocol/ecs/types"
)

// Config carries the collaborators and defaults a Service runs with.
// Zero-value fields fall back to sane defaults in NewService.
type Config struct {
	Domain   string
	Timeout  time.Duration
	NotFound clients.NotFoundMatcher
	Logger   logger.Logger
	Metrics  metrics.Recorder
}

// Service orchestrates credential resolution against a single chain
// client. No state is shared across calls beyond the immutable
// configuration, so a Service is safe for concurrent use.
type Service struct {
	client   clients.Client
	domain   string
	timeout  time.Duration
	notFound clients.NotFoundMatcher
	log      logger.Logger
	rec      metrics.Recorder
}

// NewService builds a Service, filling unset Config fields with defaults.
func NewService(client clients.Client, cfg Config) *Service {
	s := &Service{
		client:   client,
		domain:   cfg.Domain,
		timeout:  cfg.Timeout,
		notFound: cfg.NotFound,
		log:      cfg.Logger,
		rec:      cfg.Metrics,
	}
	if s.domain == "" {
		s.domain = types.DefaultDomain
	}
	if s.timeout <= 0 {
		s.timeout = types.DefaultResolveTimeout
	}
	if s.notFound == nil {
		s.notFound = clients.IsNotFound
	}
	if s.log == nil {
		s.log = logger.Noop{}
	}
	if s.rec == nil {
		s.rec = metrics.Noop{}
	}
	return s
}

// Domain returns the root domain lookup names are built under.
func (s *Service) Domain() string {
	return s.domain
}

// LookupName previews the fully-qualified lookup name for an identifier
// without resolving anything.
func (s *Service) LookupName(identifier types.CredentialIdentifier) string {
	return types.ConstructLookupName(identifier, s.domain)
}

type readOutcome struct {
	value string
	err   error
}

// Resolve runs the full pipeline for one request. By default every failure
// is folded into the returned result and the error is nil; with
// opts.Strict the failure is returned as an error instead. A "not found"
// upstream error is not a failure at all: it yields an empty result with
// no error text.
func (s *Service) Resolve(ctx context.Context, identifier types.CredentialIdentifier, key string, opts *types.ResolveOptions) (*types.ResolutionResult, error) {
	if opts == nil {
		opts = &types.ResolveOptions{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}

	started := time.Now()

	// Computed before validation so the result names the lookup even when
	// the request is rejected.
	lookupName := types.ConstructLookupName(identifier, s.domain)

	request := types.CredentialRequest{Identifier: identifier, Key: key}
	if err := request.Validate(); err != nil {
		s.rec.RecordResolution(metrics.OutcomeInvalid, time.Since(started))
		return s.fail(lookupName, key, err, opts.Strict)
	}

	ch := make(chan readOutcome, 1)
	go func() {
		value, err := s.client.TextRecord(ctx, lookupName, key)
		// Buffered: if the timer already won, nobody reads this and the
		// goroutine still exits.
		ch <- readOutcome{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var out readOutcome
	select {
	case out = <-ch:
	case <-timer.C:
		s.rec.RecordResolution(metrics.OutcomeTimeout, time.Since(started))
		s.log.Warnw("credential resolution timed out",
			"lookupName", lookupName, "credentialKey", key, "timeout", timeout)
		err := &types.ECSError{
			Code:    types.ErrResolutionTimeout,
			Message: fmt.Sprintf("resolution of %q timed out after %s", lookupName, timeout),
		}
		return s.fail(lookupName, key, err, opts.Strict)
	case <-ctx.Done():
		s.rec.RecordResolution(metrics.OutcomeError, time.Since(started))
		err := &types.ECSError{
			Code:    types.ErrResolution,
			Message: fmt.Sprintf("resolution of %q aborted: %v", lookupName, ctx.Err()),
		}
		return s.fail(lookupName, key, err, opts.Strict)
	}

	if out.err != nil {
		if s.notFound(out.err) {
			s.rec.RecordResolution(metrics.OutcomeNotFound, time.Since(started))
			s.log.Debugw("credential record absent",
				"lookupName", lookupName, "credentialKey", key)
			return &types.ResolutionResult{
				LookupName:    lookupName,
				CredentialKey: key,
			}, nil
		}
		s.rec.RecordResolution(metrics.OutcomeError, time.Since(started))
		s.log.Errorw("credential resolution failed",
			"lookupName", lookupName, "credentialKey", key, "err", out.err)
		err := &types.ECSError{
			Code:    types.ErrResolution,
			Message: fmt.Sprintf("failed to resolve %q: %v", lookupName, out.err),
		}
		return s.fail(lookupName, key, err, opts.Strict)
	}

	value := DecodeValue(out.value)
	outcome := metrics.OutcomeSuccess
	if value == nil {
		outcome = metrics.OutcomeNotFound
	}
	s.rec.RecordResolution(outcome, time.Since(started))
	s.log.Debugw("credential resolved",
		"lookupName", lookupName, "credentialKey", key, "success", value != nil)

	return &types.ResolutionResult{
		Value:         value,
		LookupName:    lookupName,
		CredentialKey: key,
		Success:       value != nil,
	}, nil
}

// BatchResolve runs every request through Resolve concurrently. Results
// come back in input order with the originating request attached; one
// request's failure never aborts its siblings, so Strict is ignored at the
// element level. The only error returned is context cancellation while
// collecting.
func (s *Service) BatchResolve(ctx context.Context, requests []types.CredentialRequest, opts *types.ResolveOptions) ([]*types.BatchResult, error) {
	results := make([]*types.BatchResult, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	elementOpts := &types.ResolveOptions{}
	if opts != nil {
		elementOpts.Timeout = opts.Timeout
	}

	type indexed struct {
		index  int
		result *types.ResolutionResult
	}

	resultChan := make(chan indexed, len(requests))

	for i, request := range requests {
		go func(index int, req types.CredentialRequest) {
			result, _ := s.Resolve(ctx, req.Identifier, req.Key, elementOpts)
			resultChan <- indexed{index: index, result: result}
		}(i, request)
	}

	for range requests {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-resultChan:
			results[res.index] = &types.BatchResult{
				ResolutionResult: *res.result,
				Request:          requests[res.index],
			}
		}
	}

	return results, nil
}

// fail folds err into a failed result, or surfaces it when strict.
func (s *Service) fail(lookupName, key string, err error, strict bool) (*types.ResolutionResult, error) {
	if strict {
		return nil, err
	}
	return &types.ResolutionResult{
		LookupName:    lookupName,
		CredentialKey: key,
		Error:         err.Error(),
	}, nil
}
