package profile

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/infrastructure/sqlite"
	domain "github.com/zjrosen/choicekit/internal/profile"
	"github.com/zjrosen/choicekit/internal/tracing"
)

// countingRepo counts FindByGUID calls so tests can observe the cache.
type countingRepo struct {
	domain.Repository
	finds atomic.Int32
}

func (r *countingRepo) FindByGUID(ctx context.Context, guid string) (*domain.Profile, error) {
	r.finds.Add(1)
	return r.Repository.FindByGUID(ctx, guid)
}

func newTestService(t *testing.T, opts Options) (*Service, *countingRepo) {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &countingRepo{Repository: db.ProfileRepository()}
	return NewService(repo, opts), repo
}

func fieldValue(t *testing.T, fields []Assignment, name string) string {
	t.Helper()
	for _, f := range fields {
		if f.Field == name {
			return f.Raw
		}
	}
	t.Fatalf("no field %s", name)
	return ""
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"priority=H", " level =", "region=a=b"})
	require.NoError(t, err)
	require.Equal(t, []Assignment{
		{Field: "priority", Raw: "H"},
		{Field: "level", Raw: ""},
		{Field: "region", Raw: "a=b"},
	}, got)
	require.Equal(t, "a=b", fieldValue(t, got, "region"))

	for _, bad := range []string{"priority", "=H", ""} {
		_, err := ParseAssignments([]string{bad})
		require.ErrorIs(t, err, ErrInvalidAssignment, "input %q", bad)
	}
}

func TestService_Resolve(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	tests := []struct {
		field, raw, want string
	}{
		{domain.FieldPriority, "H", "H"},
		{domain.FieldPriority, "HIGH", "H"},
		{domain.FieldPriority, "High", "H"},
		{domain.FieldFruit, "桃子", "2"},
		{domain.FieldFruit, "ORANGE", "3"},
		{domain.FieldSuit, "1", "1"},
		{domain.FieldRegion, "HN", "华南"},
		{domain.FieldLevel, "", ""},
		{domain.FieldLevel, "大二", "SO"},
	}
	for _, tt := range tests {
		got, err := svc.Resolve(ctx, tt.field, tt.raw)
		require.NoError(t, err, "%s=%s", tt.field, tt.raw)
		require.Equal(t, tt.want, got, "%s=%s", tt.field, tt.raw)
	}

	_, err := svc.Resolve(ctx, domain.FieldPriority, "")
	require.ErrorIs(t, err, choices.ErrNotFound, "empty raw on a required field")

	_, err = svc.Resolve(ctx, "nope", "x")
	require.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestService_Resolve_PinnedLookup(t *testing.T) {
	svc, _ := newTestService(t, Options{By: choices.ByLabel})

	got, err := svc.Resolve(context.Background(), domain.FieldGender, "Female")
	require.NoError(t, err)
	require.Equal(t, "F", got)

	_, err = svc.Resolve(context.Background(), domain.FieldGender, "F")
	require.ErrorIs(t, err, choices.ErrNotFound)
}

func TestService_Create_DefaultsAndAssignments(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	dto, err := svc.Create(ctx, []Assignment{
		{Field: domain.FieldPriority, Raw: "HIGH"},
		{Field: domain.FieldFruit, Raw: "桃子"},
		{Field: domain.FieldLevel, Raw: "GR"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, dto.GUID)

	priority, _ := dto.Field(domain.FieldPriority)
	require.Equal(t, "H", priority.Value)
	require.Equal(t, "High", priority.Label)

	fruit, _ := dto.Field(domain.FieldFruit)
	require.Equal(t, 2, fruit.Value)

	region, _ := dto.Field(domain.FieldRegion)
	require.Equal(t, "华北", region.Value, "unassigned fields keep their defaults")

	stored, err := svc.Get(ctx, dto.GUID)
	require.NoError(t, err)
	require.Equal(t, dto.Fields, stored.Fields)
}

func TestService_Create_RejectsUnknownLabel(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	_, err := svc.Create(context.Background(), []Assignment{{Field: domain.FieldSuit, Raw: "JOKER"}})
	require.ErrorIs(t, err, choices.ErrNotFound)
	require.Contains(t, err.Error(), "field suit")

	list, err := svc.List(context.Background(), nil, 0)
	require.NoError(t, err)
	require.Empty(t, list, "nothing should be saved")
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t, Options{CacheTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, []Assignment{{Field: domain.FieldLevel, Raw: "FR"}})
	require.NoError(t, err)

	// Prime the cache, then make sure the update is visible.
	_, err = svc.Get(ctx, created.GUID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.GUID, []Assignment{
		{Field: domain.FieldLevel, Raw: ""},
		{Field: domain.FieldAnswer, Raw: "YES"},
	})
	require.NoError(t, err)

	level, _ := updated.Field(domain.FieldLevel)
	require.Nil(t, level.Value)

	got, err := svc.Get(ctx, created.GUID)
	require.NoError(t, err)
	answer, _ := got.Field(domain.FieldAnswer)
	require.Equal(t, 1, answer.Value)
	require.Equal(t, "Yes", answer.Label)
	level, _ = got.Field(domain.FieldLevel)
	require.Nil(t, level.Value)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	_, err := svc.Update(context.Background(), "missing", []Assignment{{Field: domain.FieldPriority, Raw: "H"}})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestService_Get_UsesCache(t *testing.T) {
	svc, repo := newTestService(t, Options{CacheTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	for range 3 {
		_, err := svc.Get(ctx, created.GUID)
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), repo.finds.Load())
}

func TestService_Get_CacheDisabled(t *testing.T) {
	svc, repo := newTestService(t, Options{})
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	for range 3 {
		_, err := svc.Get(ctx, created.GUID)
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), repo.finds.Load())
}

func TestService_Delete_Evicts(t *testing.T) {
	svc, _ := newTestService(t, Options{CacheTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.GUID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.GUID))

	_, err = svc.Get(ctx, created.GUID)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	err = svc.Delete(ctx, created.GUID)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestService_List(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, []Assignment{{Field: domain.FieldLevel, Raw: "SR"}, {Field: domain.FieldSuit, Raw: "HEART"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, []Assignment{{Field: domain.FieldSuit, Raw: "HEART"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		where []Assignment
		want  int
	}{
		{"all", nil, 3},
		{"by label", []Assignment{{Field: domain.FieldSuit, Raw: "Heart"}}, 2},
		{"null level", []Assignment{{Field: domain.FieldLevel, Raw: ""}}, 2},
		{"combined", []Assignment{{Field: domain.FieldSuit, Raw: "3"}, {Field: domain.FieldLevel, Raw: "高级"}}, 1},
		{"no match", []Assignment{{Field: domain.FieldPriority, Raw: "HIGH"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.where, 0)
			require.NoError(t, err)
			require.Len(t, got, tt.want)
		})
	}

	limited, err := svc.List(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	_, err = svc.List(ctx, []Assignment{{Field: domain.FieldSuit, Raw: "JOKER"}}, 0)
	require.ErrorIs(t, err, choices.ErrNotFound)
}

func TestService_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc, _ := newTestService(t, Options{Tracer: tp.Tracer("test"), CacheTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, []Assignment{{Field: domain.FieldPriority, Raw: "Medium"}})
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.GUID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.GUID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, "missing")
	require.Error(t, err)

	byName := map[string][]sdktrace.ReadOnlySpan{}
	for _, s := range recorder.Ended() {
		byName[s.Name()] = append(byName[s.Name()], s)
	}

	create := byName[tracing.SpanPrefixService+"create"]
	require.Len(t, create, 1)
	require.Equal(t, codes.Ok, create[0].Status().Code)
	var events []string
	for _, e := range create[0].Events() {
		events = append(events, e.Name)
	}
	require.Equal(t, []string{tracing.EventValueResolved, tracing.EventValidated}, events)

	save := byName[tracing.SpanPrefixRepo+"save"]
	require.Len(t, save, 1)
	require.Equal(t, create[0].SpanContext().SpanID(), save[0].Parent().SpanID())

	gets := byName[tracing.SpanPrefixService+"get"]
	require.Len(t, gets, 3)
	require.Contains(t, gets[0].Attributes(), attribute.Bool(tracing.AttrCacheHit, false))
	require.Contains(t, gets[1].Attributes(), attribute.Bool(tracing.AttrCacheHit, true))
	require.Equal(t, codes.Error, gets[2].Status().Code)
	require.Contains(t, gets[2].Attributes(), attribute.String(tracing.AttrErrorType, "*profile.NotFoundError"))
}
