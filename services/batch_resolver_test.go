package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/KadariPavani/placement-training-backend/models"
)

func testBatchStore() *fakeBatchStore {
	return &fakeBatchStore{
		regular: []fakeBatch{
			{id: "64a000000000000000000001", number: "B-2025-01", name: "CSE Batch One"},
			{id: "64a000000000000000000002", number: "B-2025-02", name: "ECE Batch Two"},
		},
		placement: []fakeBatch{
			{id: "64a000000000000000000011", number: "PT-JAVA-01", name: "Java Placement"},
			{id: "64a000000000000000000012", number: "PT-PY-02", name: "Python Placement"},
		},
	}
}

func TestResolveLadder(t *testing.T) {
	resolver := NewBatchResolver(testBatchStore(), false)
	ctx := context.Background()

	tests := []struct {
		name       string
		kind       models.BatchKind
		candidates []string
		want       []string
	}{
		{
			name:       "canonical ids pass through unchanged",
			kind:       models.BatchKindRegular,
			candidates: []string{"64a000000000000000000001", "64a000000000000000000002"},
			want:       []string{"64a000000000000000000001", "64a000000000000000000002"},
		},
		{
			name:       "exact batch number",
			kind:       models.BatchKindRegular,
			candidates: []string{"B-2025-01"},
			want:       []string{"64a000000000000000000001"},
		},
		{
			name:       "exact name",
			kind:       models.BatchKindPlacement,
			candidates: []string{"Java Placement"},
			want:       []string{"64a000000000000000000011"},
		},
		{
			name:       "case-insensitive",
			kind:       models.BatchKindRegular,
			candidates: []string{"b-2025-02"},
			want:       []string{"64a000000000000000000002"},
		},
		{
			name:       "substring of a shortened code",
			kind:       models.BatchKindPlacement,
			candidates: []string{"pt-py"},
			want:       []string{"64a000000000000000000012"},
		},
		{
			name:       "unresolvable candidate dropped",
			kind:       models.BatchKindRegular,
			candidates: []string{"B-2025-01", "no-such-batch"},
			want:       []string{"64a000000000000000000001"},
		},
		{
			name:       "duplicates collapse",
			kind:       models.BatchKindRegular,
			candidates: []string{"B-2025-01", "b-2025-01", "CSE Batch One"},
			want:       []string{"64a000000000000000000001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, tt.kind, tt.candidates)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveStrictMode(t *testing.T) {
	resolver := NewBatchResolver(testBatchStore(), true)
	_, err := resolver.Resolve(context.Background(), models.BatchKindRegular, []string{"no-such-batch"})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReconcileMovesPlacementStrays(t *testing.T) {
	resolver := NewBatchResolver(testBatchStore(), false)

	// A placement batch id typed into the regular candidate list.
	resolved, err := resolver.ResolveAll(context.Background(),
		[]string{"B-2025-01", "64a000000000000000000011"},
		nil,
		models.BatchTypeNonCRT,
	)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}

	if contains(resolved.Regular, "64a000000000000000000011") {
		t.Error("placement id survived in the regular set")
	}
	if !contains(resolved.Placement, "64a000000000000000000011") {
		t.Error("placement id missing from the placement set")
	}
	for _, id := range resolved.Regular {
		if contains(resolved.Placement, id) {
			t.Errorf("id %s appears in both sets", id)
		}
	}
	if resolved.FinalBatchType != models.BatchTypeBoth {
		t.Errorf("FinalBatchType = %q, want %q", resolved.FinalBatchType, models.BatchTypeBoth)
	}
}

func TestReconcileDeduplicates(t *testing.T) {
	resolver := NewBatchResolver(testBatchStore(), false)

	// The same placement batch arrives via both candidate lists.
	resolved, err := resolver.ResolveAll(context.Background(),
		[]string{"64a000000000000000000011"},
		[]string{"PT-JAVA-01"},
		models.BatchTypePlacement,
	)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}

	count := 0
	for _, id := range resolved.Placement {
		if id == "64a000000000000000000011" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("placement id stored %d times, want 1", count)
	}
	if len(resolved.Regular) != 0 {
		t.Errorf("regular set = %v, want empty", resolved.Regular)
	}
}

func TestFinalBatchType(t *testing.T) {
	tests := []struct {
		name      string
		regular   []string
		placement []string
		requested string
		want      string
	}{
		{"both sets resolved", []string{"a"}, []string{"b"}, models.BatchTypeNonCRT, models.BatchTypeBoth},
		{"only placement", nil, []string{"b"}, models.BatchTypeNonCRT, models.BatchTypePlacement},
		{"only regular", []string{"a"}, nil, models.BatchTypePlacement, models.BatchTypeNonCRT},
		{"both empty falls back", nil, nil, models.BatchTypePlacement, models.BatchTypePlacement},
		{"legacy alias normalized on fallback", nil, nil, models.BatchTypeRegular, models.BatchTypeNonCRT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := finalBatchType(tt.regular, tt.placement, tt.requested); got != tt.want {
				t.Errorf("finalBatchType = %q, want %q", got, tt.want)
			}
		})
	}
}
