package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
)

type fakeReader struct {
	meta  entity.ImageMetadata
	err   error
	panic bool
}

func (f fakeReader) Read(io.ReadSeeker) (entity.ImageMetadata, error) {
	if f.panic {
		panic("decoder blew up")
	}

	return f.meta, f.err
}

type fakeEngine struct {
	mu    sync.Mutex
	calls int
	run   func(ctx context.Context, inputPath, outDir string) error
}

func (f *fakeEngine) Convert(ctx context.Context, inputPath, outDir string) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.run == nil {
		return nil
	}

	return f.run(ctx, inputPath, outDir)
}

func (f *fakeEngine) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type fakeInspector struct {
	pages int
	err   error
}

func (f fakeInspector) PageCount(io.ReadSeeker) (int, error) {
	return f.pages, f.err
}

type fakeArchiver struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakeArchiver) Archive(_ context.Context, objectName string, data []byte, contentType string,
) (entity.ArchiveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return entity.ArchiveResult{}, f.err
	}

	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[objectName] = data

	return entity.ArchiveResult{
		Size:     int64(len(data)),
		Type:     contentType,
		Location: "archive/" + objectName,
		Bucket:   "archive",
	}, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakePublisher) Publish(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)

	return nil
}

type fakeWriter struct {
	mu      sync.Mutex
	records []model.AuditRecord
}

func (f *fakeWriter) Write(_ context.Context, rec *model.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *rec)

	return nil
}

type fakeRecorder struct {
	mu          sync.Mutex
	verdicts    []string
	conversions []string
	extractions []string
}

func (f *fakeRecorder) ObserveVerdict(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verdicts = append(f.verdicts, outcome)
}

func (f *fakeRecorder) ObserveConversion(outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversions = append(f.conversions, outcome)
}

func (f *fakeRecorder) ObserveExtraction(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extractions = append(f.extractions, outcome)
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f fakeRecognizer) Recognize(context.Context, []byte) (string, error) {
	return f.text, f.err
}

type fakeLister struct {
	records   []model.AuditRecord
	err       error
	operation model.Operation
	limit     int64
}

func (f *fakeLister) List(_ context.Context, operation model.Operation, _, _ *time.Time, limit int64,
) ([]model.AuditRecord, error) {
	f.operation = operation
	f.limit = limit

	return f.records, f.err
}
