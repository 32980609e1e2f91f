package services

import (
	"context"
	"log"
	"strings"

	"github.com/KadariPavani/placement-training-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BatchResolver turns raw batch references (ids, batch numbers, names or
// fragments of either) into canonical batch ids. Upstream input is
// unreliable about which taxonomy a typed code belongs to, so resolution
// is followed by a cross-kind reconciliation pass.
type BatchResolver struct {
	Batches BatchStore
	// Strict makes an unresolvable candidate a validation error instead
	// of a logged drop.
	Strict bool
}

func NewBatchResolver(batches BatchStore, strict bool) *BatchResolver {
	return &BatchResolver{Batches: batches, Strict: strict}
}

// ResolvedBatches is the outcome of resolving both candidate lists for a
// quiz. Regular and Placement never share an id.
type ResolvedBatches struct {
	Regular   []string
	Placement []string
	// FinalBatchType is derived from which sets resolved non-empty,
	// falling back to the caller-supplied type when both are empty.
	FinalBatchType string
}

// Resolve resolves one candidate list against one taxonomy. Unresolvable
// candidates are dropped (or rejected, when Strict).
func (r *BatchResolver) Resolve(ctx context.Context, kind models.BatchKind, candidates []string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, raw := range candidates {
		candidate := strings.TrimSpace(raw)
		if candidate == "" {
			continue
		}
		id, err := r.resolveOne(ctx, kind, candidate)
		if err != nil {
			return nil, err
		}
		if id == "" {
			if r.Strict {
				return nil, validationErrorf("unknown %s batch %q", kind, candidate)
			}
			log.Printf("batch resolver: dropping unresolvable %s batch candidate %q", kind, candidate)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// resolveOne walks the resolution ladder; first match wins.
func (r *BatchResolver) resolveOne(ctx context.Context, kind models.BatchKind, candidate string) (string, error) {
	if _, err := primitive.ObjectIDFromHex(candidate); err == nil {
		return candidate, nil
	}
	for _, find := range []func(context.Context, models.BatchKind, string) (*models.BatchRef, error){
		r.Batches.FindExact,
		r.Batches.FindCaseInsensitive,
		r.Batches.FindSubstring,
	} {
		ref, err := find(ctx, kind, candidate)
		if err != nil {
			return "", err
		}
		if ref != nil {
			return ref.ID, nil
		}
	}
	return "", nil
}

// ResolveAll resolves both candidate lists concurrently, reconciles
// cross-kind strays and derives the final batch type.
func (r *BatchResolver) ResolveAll(ctx context.Context, regularCandidates, placementCandidates []string, requestedType string) (*ResolvedBatches, error) {
	var (
		regular, placement []string
		regErr, plErr      error
		done               = make(chan struct{})
	)
	go func() {
		defer close(done)
		placement, plErr = r.Resolve(ctx, models.BatchKindPlacement, placementCandidates)
	}()
	regular, regErr = r.Resolve(ctx, models.BatchKindRegular, regularCandidates)
	<-done
	if regErr != nil {
		return nil, regErr
	}
	if plErr != nil {
		return nil, plErr
	}

	regular, placement, err := r.reconcile(ctx, regular, placement)
	if err != nil {
		return nil, err
	}

	return &ResolvedBatches{
		Regular:        regular,
		Placement:      placement,
		FinalBatchType: finalBatchType(regular, placement, requestedType),
	}, nil
}

// reconcile moves any "regular" id that actually lives in the placement
// store over to the placement set, deduplicated. Without this a quiz typed
// against the wrong taxonomy would never reach placement-track students.
func (r *BatchResolver) reconcile(ctx context.Context, regular, placement []string) ([]string, []string, error) {
	inPlacement := make(map[string]bool, len(placement))
	for _, id := range placement {
		inPlacement[id] = true
	}

	kept := regular[:0]
	for _, id := range regular {
		exists, err := r.Batches.Exists(ctx, models.BatchKindPlacement, id)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			log.Printf("batch resolver: moving %s from regular to placement assignment", id)
			if !inPlacement[id] {
				inPlacement[id] = true
				placement = append(placement, id)
			}
			continue
		}
		kept = append(kept, id)
	}
	return kept, placement, nil
}

func finalBatchType(regular, placement []string, requested string) string {
	switch {
	case len(regular) > 0 && len(placement) > 0:
		return models.BatchTypeBoth
	case len(placement) > 0:
		return models.BatchTypePlacement
	case len(regular) > 0:
		return models.BatchTypeNonCRT
	default:
		return normalizeBatchType(requested)
	}
}

// normalizeBatchType maps the legacy "regular" alias onto "noncrt".
func normalizeBatchType(batchType string) string {
	if batchType == models.BatchTypeRegular {
		return models.BatchTypeNonCRT
	}
	return batchType
}
