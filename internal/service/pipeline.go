package service

import (
	"context"
	"fmt"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/internal/repository"
	"github.com/prohmpiriya/cinema-booking/internal/validator"
	"github.com/prohmpiriya/cinema-booking/pkg/logger"
	"github.com/prohmpiriya/cinema-booking/pkg/metrics"
	"github.com/prohmpiriya/cinema-booking/pkg/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EntityPolicy holds the rules of one entity type. P is the patch type
// carrying the supplied fields of a create or update.
type EntityPolicy[T any, P any] interface {
	// ApplyPatch copies the supplied fields onto entity
	ApplyPatch(entity *T, patch P)
	// ValidateCreate checks a new entity and may fill derived fields
	ValidateCreate(ctx context.Context, actor Actor, candidate *T, patch P) error
	// ValidateUpdate checks the patched candidate against the stored entity
	ValidateUpdate(ctx context.Context, actor Actor, existing, candidate *T, patch P) error
	ValidateDelete(ctx context.Context, actor Actor, entity *T) error
	ValidateGet(ctx context.Context, actor Actor, entity *T) error
}

// EntityStore persists one entity type. GetByID returns nil for absent rows.
type EntityStore[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Updater is implemented by stores of entities that can be updated
type Updater[T any] interface {
	Update(ctx context.Context, entity *T) error
}

// Pipeline runs create, update, delete and get for one entity type:
// resolve, validate, then persist inside one transaction
type Pipeline[T any, P any] struct {
	entity string
	store  EntityStore[T]
	policy EntityPolicy[T, P]
	tx     repository.Transactor
	log    *logger.Logger
}

// NewPipeline creates a pipeline for the entity named entity
func NewPipeline[T any, P any](entity string, store EntityStore[T], policy EntityPolicy[T, P], tx repository.Transactor, log *logger.Logger) *Pipeline[T, P] {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline[T, P]{
		entity: entity,
		store:  store,
		policy: policy,
		tx:     tx,
		log:    log.With(zap.String("entity", entity)),
	}
}

// Create validates candidate with patch applied and inserts it
func (p *Pipeline[T, P]) Create(ctx context.Context, actor Actor, candidate *T, patch P) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, "service."+p.entity+".create")
	defer span.End()

	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		p.policy.ApplyPatch(candidate, patch)
		if err := p.policy.ValidateCreate(ctx, actor, candidate, patch); err != nil {
			return err
		}
		return p.store.Create(ctx, candidate)
	})
	if err != nil {
		return nil, p.fail(span, "create", actor, err)
	}
	return candidate, nil
}

// Update applies patch to the entity with id, validates and stores it
func (p *Pipeline[T, P]) Update(ctx context.Context, actor Actor, id string, patch P) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, "service."+p.entity+".update")
	defer span.End()

	updater, ok := p.store.(Updater[T])
	if !ok {
		return nil, p.fail(span, "update", actor, fmt.Errorf("%s store does not support update", p.entity))
	}

	var updated *T
	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := validator.RequireExists(ctx, id, p.store.GetByID, domain.ErrObjectNotFound)
		if err != nil {
			return err
		}
		candidate := *existing
		p.policy.ApplyPatch(&candidate, patch)
		if err := p.policy.ValidateUpdate(ctx, actor, existing, &candidate, patch); err != nil {
			return err
		}
		if err := updater.Update(ctx, &candidate); err != nil {
			return err
		}
		updated = &candidate
		return nil
	})
	if err != nil {
		return nil, p.fail(span, "update", actor, err)
	}
	return updated, nil
}

// Delete removes the entity with id once the policy allows it
func (p *Pipeline[T, P]) Delete(ctx context.Context, actor Actor, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service."+p.entity+".delete")
	defer span.End()

	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := validator.RequireExists(ctx, id, p.store.GetByID, domain.ErrObjectNotFound)
		if err != nil {
			return err
		}
		if err := p.policy.ValidateDelete(ctx, actor, existing); err != nil {
			return err
		}
		return p.store.Delete(ctx, id)
	})
	if err != nil {
		return p.fail(span, "delete", actor, err)
	}
	return nil
}

// Get resolves the entity with id and checks the actor may read it
func (p *Pipeline[T, P]) Get(ctx context.Context, actor Actor, id string) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, "service."+p.entity+".get")
	defer span.End()

	entity, err := validator.RequireExists(ctx, id, p.store.GetByID, domain.ErrObjectNotFound)
	if err != nil {
		return nil, p.fail(span, "get", actor, err)
	}
	if err := p.policy.ValidateGet(ctx, actor, entity); err != nil {
		return nil, p.fail(span, "get", actor, err)
	}
	return entity, nil
}

// fail classifies err, records it on the span and in the logs and returns it
func (p *Pipeline[T, P]) fail(span trace.Span, op string, actor Actor, err error) error {
	err = domain.Persistence(err)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("user_id", actor.UserID),
	}
	if sc := span.SpanContext(); sc.HasTraceID() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}

	if domain.IsClientError(err) {
		kind := string(domain.KindOf(err))
		metrics.ValidationRejections.WithLabelValues(p.entity, kind).Inc()
		p.log.Info("request rejected", append(fields, zap.String("kind", kind), zap.String("reason", domain.MessageOf(err)))...)
		return err
	}

	telemetry.SetSpanError(span, err)
	p.log.Error("operation failed", append(fields, zap.Error(err))...)
	return err
}
