package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec), "each line should be valid JSON")
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestNewFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"existing"}`+"\n"), 0644))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{Name: "repo.profile.save", StartTime: time.Now(), EndTime: time.Now()}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2, "file should have original line plus new span")
	require.Equal(t, "existing", records[0].Name)
	require.Equal(t, "repo.profile.save", records[1].Name)
}

func TestFileExporter_WritesRecord(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Now()
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	stub := tracetest.SpanStub{
		Name:      "service.profile.update",
		SpanKind:  trace.SpanKindInternal,
		Parent:    parent,
		StartTime: start,
		EndTime:   start.Add(150 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "invalid profile"},
		Attributes: []attribute.KeyValue{
			attribute.String(AttrProfileGUID, "g-1"),
			attribute.Int(AttrFieldCount, 2),
		},
		Events: []sdktrace.Event{{
			Name:       EventValueResolved,
			Time:       start,
			Attributes: []attribute.KeyValue{attribute.String(AttrSetName, "Priority")},
		}},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	rec := records[0]
	require.Equal(t, "service.profile.update", rec.Name)
	require.Equal(t, parent.SpanID().String(), rec.ParentSpanID)
	require.Equal(t, "ERROR", rec.Status)
	require.Equal(t, "invalid profile", rec.StatusMsg)
	require.InDelta(t, 150.0, rec.DurationMs, 0.001)
	require.Equal(t, "g-1", rec.Attributes[AttrProfileGUID])
	require.Equal(t, float64(2), rec.Attributes[AttrFieldCount], "JSON numbers decode as float64")
	require.Len(t, rec.Events, 1)
	require.Equal(t, "Priority", rec.Events[0].Attributes[AttrSetName])
}

func TestFileExporter_EmptyBatch(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))

	content, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Empty(t, content)
}

func TestFileExporter_ShutdownTwice(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err, "export after shutdown should fail")
}

func TestFileExporter_ConcurrentWrites(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stub := tracetest.SpanStub{Name: "concurrent", StartTime: time.Now(), EndTime: time.Now()}
			_ = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
		}()
	}
	wg.Wait()
	require.NoError(t, exporter.Shutdown(context.Background()))

	content, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Equal(t, 10, strings.Count(string(content), "\n"), "lines should not interleave")
	require.Len(t, readRecords(t, tracePath), 10)
}
