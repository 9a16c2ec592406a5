// Package profile implements the application layer for profiles.
//
// Service sits between the CLI and the domain: it turns raw field=text
// assignments into set values, runs repository calls inside spans, and keeps
// rendered profiles in a read-through cache that writes invalidate.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/choicekit/internal/cachemanager"
	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/log"
	"github.com/zjrosen/choicekit/internal/presentation"
	domain "github.com/zjrosen/choicekit/internal/profile"
	"github.com/zjrosen/choicekit/internal/tracing"
)

// ErrInvalidAssignment is returned for malformed field=value pairs.
var ErrInvalidAssignment = errors.New("invalid assignment")

// Assignment sets one field from raw text.
type Assignment struct {
	Field string
	Raw   string
}

// ParseAssignments parses "field=raw" pairs. The raw part may be empty and
// may itself contain '='.
func ParseAssignments(pairs []string) ([]Assignment, error) {
	out := make([]Assignment, 0, len(pairs))
	for _, pair := range pairs {
		field, raw, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("%w %q (want field=value)", ErrInvalidAssignment, pair)
		}
		out = append(out, Assignment{Field: field, Raw: raw})
	}
	return out, nil
}

type cacheKey string

// Options configures a Service.
type Options struct {
	// Tracer creates spans; nil disables tracing.
	Tracer trace.Tracer
	// CacheTTL is how long a rendered profile stays cached. Zero disables
	// the cache.
	CacheTTL time.Duration
	// By pins how raw text is matched; ByAny tries value, name, then label.
	By choices.Lookup
}

// Service provides profile use cases.
type Service struct {
	repo   domain.Repository
	cache  *cachemanager.ReadThroughCache[cacheKey, presentation.ProfileDTO, string]
	tracer trace.Tracer
	ttl    time.Duration
	by     choices.Lookup
}

// NewService creates a Service over repo.
func NewService(repo domain.Repository, opts Options) *Service {
	s := &Service{
		repo:   repo,
		tracer: opts.Tracer,
		ttl:    opts.CacheTTL,
		by:     opts.By,
	}
	manager := cachemanager.NewInMemoryCacheManager[cacheKey, presentation.ProfileDTO](
		"profiles", opts.CacheTTL, cachemanager.DefaultCleanupInterval)
	s.cache = cachemanager.NewReadThroughCache(manager, s.load, opts.CacheTTL <= 0)
	return s
}

func (s *Service) load(ctx context.Context, guid string) (presentation.ProfileDTO, error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, false))
	p, err := s.repo.FindByGUID(ctx, guid)
	if err != nil {
		return presentation.ProfileDTO{}, err
	}
	span.AddEvent(tracing.EventCacheLoaded)
	return presentation.FromProfile(p), nil
}

// Resolve converts raw text for field into the text form of a set value.
// Raw text may be the value, the entry name, or the label. An empty raw on a
// nullable field resolves to "" (NULL).
func (s *Service) Resolve(ctx context.Context, field, raw string) (string, error) {
	d, err := domain.SetFor(field)
	if err != nil {
		return "", err
	}
	if raw == "" && domain.Nullable(field) {
		return "", nil
	}
	e, err := d.Resolve(raw, s.by)
	if err != nil {
		return "", fmt.Errorf("field %s: %w", field, err)
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventValueResolved, trace.WithAttributes(
		attribute.String(tracing.AttrProfileField, field),
		attribute.String(tracing.AttrSetName, d.Name),
		attribute.String(tracing.AttrLookupBy, string(s.by)),
		attribute.String(tracing.AttrRaw, raw),
		attribute.String(tracing.AttrValue, e.ValueText),
	))
	return e.ValueText, nil
}

func (s *Service) apply(ctx context.Context, p *domain.Profile, assignments []Assignment) error {
	for _, a := range assignments {
		text, err := s.Resolve(ctx, a.Field, a.Raw)
		if err != nil {
			return err
		}
		if err := p.Set(a.Field, text); err != nil {
			return err
		}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventValidated)
	return nil
}

// Create builds a profile from defaults plus assignments and saves it.
func (s *Service) Create(ctx context.Context, assignments []Assignment) (_ presentation.ProfileDTO, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"create",
		attribute.Int(tracing.AttrFieldCount, len(assignments)))
	defer func() { tracing.Finish(span, err) }()

	p := domain.NewProfile()
	span.SetAttributes(attribute.String(tracing.AttrProfileGUID, p.GUID()))
	if err := s.apply(ctx, p, assignments); err != nil {
		return presentation.ProfileDTO{}, err
	}
	if err := s.save(ctx, p); err != nil {
		return presentation.ProfileDTO{}, err
	}
	log.Info(log.CatCLI, "Created profile", "guid", p.GUID(), "trace_id", tracing.TraceID(ctx))
	return presentation.FromProfile(p), nil
}

// Update applies assignments to an existing profile and saves it.
func (s *Service) Update(ctx context.Context, guid string, assignments []Assignment) (_ presentation.ProfileDTO, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"update",
		attribute.String(tracing.AttrProfileGUID, guid),
		attribute.Int(tracing.AttrFieldCount, len(assignments)))
	defer func() { tracing.Finish(span, err) }()

	p, err := s.repo.FindByGUID(ctx, guid)
	if err != nil {
		return presentation.ProfileDTO{}, err
	}
	if err := s.apply(ctx, p, assignments); err != nil {
		return presentation.ProfileDTO{}, err
	}
	p.Touch()
	if err := s.save(ctx, p); err != nil {
		return presentation.ProfileDTO{}, err
	}
	if err := s.evict(ctx, guid); err != nil {
		return presentation.ProfileDTO{}, err
	}
	log.Info(log.CatCLI, "Updated profile", "guid", guid, "fields", len(assignments))
	return presentation.FromProfile(p), nil
}

func (s *Service) save(ctx context.Context, p *domain.Profile) (err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixRepo+"save",
		attribute.String(tracing.AttrProfileGUID, p.GUID()))
	defer func() { tracing.Finish(span, err) }()
	return s.repo.Save(ctx, p)
}

// Get returns a rendered profile, from the cache when possible.
func (s *Service) Get(ctx context.Context, guid string) (_ presentation.ProfileDTO, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"get",
		attribute.String(tracing.AttrProfileGUID, guid))
	defer func() { tracing.Finish(span, err) }()

	// load overwrites this on a miss.
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, true))
	return s.cache.GetWithRefresh(ctx, cacheKey(guid), guid, s.ttl)
}

// List returns profiles matching every where pair. Values in where are raw
// text resolved the same way as assignments; an empty value on a nullable
// field matches NULL.
func (s *Service) List(ctx context.Context, where []Assignment, limit int) (_ []presentation.ProfileDTO, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"list",
		attribute.Int(tracing.AttrFieldCount, len(where)))
	defer func() { tracing.Finish(span, err) }()

	filter := domain.ListFilter{Limit: limit}
	for _, w := range where {
		text, err := s.Resolve(ctx, w.Field, w.Raw)
		if err != nil {
			return nil, err
		}
		cond := domain.Condition{Field: w.Field}
		if text != "" || !domain.Nullable(w.Field) {
			// Parse through a scratch profile to get the typed value.
			scratch := domain.NewProfile()
			if err := scratch.Set(w.Field, text); err != nil {
				return nil, err
			}
			cond.Value = scratch.Value(w.Field)
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	ps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(ps)))
	return presentation.FromProfiles(ps), nil
}

// Delete soft-deletes a profile.
func (s *Service) Delete(ctx context.Context, guid string) (err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"delete",
		attribute.String(tracing.AttrProfileGUID, guid))
	defer func() { tracing.Finish(span, err) }()

	if err := s.repo.Delete(ctx, guid); err != nil {
		return err
	}
	log.Info(log.CatCLI, "Deleted profile", "guid", guid)
	return s.evict(ctx, guid)
}

func (s *Service) evict(ctx context.Context, guid string) error {
	if err := s.cache.Invalidate(ctx, cacheKey(guid)); err != nil {
		return err
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventCacheEvicted)
	return nil
}

// Close closes the repository.
func (s *Service) Close() error {
	return s.repo.Close()
}
