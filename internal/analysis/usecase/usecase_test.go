package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/store"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgerror"
)

const validCSV = `Equipment Name,Type,Flowrate,Pressure,Temperature
Feed Pump,Pump,10,2,300
Backup Pump,Pump,20,4,320
`

type seqNumber struct{ n int64 }

func (s *seqNumber) Generate() int64 { s.n++; return s.n }

type seqString struct{ n int }

func (s *seqString) Generate() string { s.n++; return fmt.Sprintf("key-%03d", s.n) }

type stubRenderer struct {
	pdf []byte
	err error
}

func (r *stubRenderer) Render(_ context.Context, _ entity.Record, _ []byte) ([]byte, error) {
	return r.pdf, r.err
}

type captivePublisher struct {
	mu     sync.Mutex
	events []entity.RecordCreatedEvent
	err    error
}

func (p *captivePublisher) Publish(_ context.Context, event entity.RecordCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *captivePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// syncRunner runs the task inline so tests observe publication immediately.
type syncRunner struct{}

func (syncRunner) Go(ctx context.Context, f func(ctx context.Context) error) { _ = f(ctx) }

func newTestUsecase(t *testing.T) (*Usecase, *store.Records, *captivePublisher) {
	t.Helper()

	records := store.NewRecords(store.NewMemoryBlobStore(), &seqNumber{}, &seqString{})
	publisher := &captivePublisher{}

	uc := New(Dependency{
		Store:    records,
		Renderer: &stubRenderer{pdf: []byte("%PDF-1.4 stub")},
		Events:   publisher,
		Runner:   syncRunner{},
		ID:       &seqString{},
		RootCtx:  context.Background(),
	})
	return uc, records, publisher
}

func assertCode(t *testing.T, err error, want pkgerror.Code) {
	t.Helper()

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pkgerror.Error, got %T: %v", err, err)
	}
	if perr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, perr.Code(), err)
	}
}

func TestUsecaseSubmit(t *testing.T) {
	t.Parallel()

	uc, records, publisher := newTestUsecase(t)

	res, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Stats.TotalCount != 2 {
		t.Fatalf("expected total count 2, got %d", res.Stats.TotalCount)
	}
	if res.Stats.AvgTemp != 310.0 {
		t.Fatalf("expected avg temperature 310.0, got %v", res.Stats.AvgTemp)
	}
	if res.Stats.AvgPressure != 3.0 {
		t.Fatalf("expected avg pressure 3.0, got %v", res.Stats.AvgPressure)
	}
	if res.Stats.AvgFlow != 15.0 {
		t.Fatalf("expected avg flowrate 15.0, got %v", res.Stats.AvgFlow)
	}
	if res.Stats.TypeDistribution.Count("Pump") != 2 {
		t.Fatalf("expected 2 pumps in distribution, got %v", res.Stats.TypeDistribution)
	}

	if len(res.Preview) != 2 {
		t.Fatalf("expected 2 preview rows, got %d", len(res.Preview))
	}
	if got := res.Preview[0][entity.ColumnEquipmentName]; got != "Feed Pump" {
		t.Fatalf("expected first preview row Feed Pump, got %v", got)
	}
	if got := res.Preview[0][entity.ColumnTemperature]; got != 300.0 {
		t.Fatalf("expected numeric preview temperature 300.0, got %v (%T)", got, got)
	}

	if len(res.History) != 1 || res.History[0].ID != res.Record.ID {
		t.Fatalf("expected history to contain the new record, got %+v", res.History)
	}

	if records.Count() != 1 {
		t.Fatalf("expected 1 persisted record, got %d", records.Count())
	}
	if publisher.count() != 1 {
		t.Fatalf("expected 1 published event, got %d", publisher.count())
	}
}

func TestUsecaseSubmitMissingColumns(t *testing.T) {
	t.Parallel()

	uc, records, _ := newTestUsecase(t)

	csv := "Equipment Name,Flowrate\nFeed Pump,10\n"
	_, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected a validation error")
	}

	assertCode(t, err, pkgerror.CodeInvalidInput)
	if !strings.Contains(err.Error(), "missing columns: Type, Pressure, Temperature") {
		t.Fatalf("expected missing columns named, got %q", err.Error())
	}

	if records.Count() != 0 {
		t.Fatalf("expected no persisted record, got %d", records.Count())
	}
}

func TestUsecaseSubmitMalformedNumeric(t *testing.T) {
	t.Parallel()

	uc, records, _ := newTestUsecase(t)

	csv := "Equipment Name,Type,Flowrate,Pressure,Temperature\nFeed Pump,Pump,10,2,warm\n"
	_, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected a validation error")
	}

	assertCode(t, err, pkgerror.CodeInvalidInput)
	if !strings.Contains(err.Error(), "Temperature") {
		t.Fatalf("expected error to name the malformed column, got %q", err.Error())
	}

	if records.Count() != 0 {
		t.Fatalf("expected no persisted record, got %d", records.Count())
	}
}

func TestUsecaseSubmitZeroRows(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	csv := "Equipment Name,Type,Flowrate,Pressure,Temperature\n"
	res, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Stats.TotalCount != 0 {
		t.Fatalf("expected total count 0, got %d", res.Stats.TotalCount)
	}
	if res.Stats.AvgTemp != 0 || res.Stats.AvgPressure != 0 || res.Stats.AvgFlow != 0 {
		t.Fatalf("expected zero averages for an empty dataset, got %+v", res.Stats)
	}
	if len(res.Preview) != 0 {
		t.Fatalf("expected empty preview, got %v", res.Preview)
	}
}

func TestUsecaseSubmitUnparseable(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	_, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	assertCode(t, err, pkgerror.CodeInvalidInput)
}

func TestUsecaseHistoryLimit(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	for i := 0; i < 7; i++ {
		if _, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV)); err != nil {
			t.Fatalf("unexpected error on submit %d: %v", i, err)
		}
	}

	history, err := uc.History(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("expected history capped at 5, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].ID < history[i].ID {
			t.Fatalf("expected newest-first history, got ids %d then %d", history[i-1].ID, history[i].ID)
		}
	}
}

func TestUsecaseHistoryIsolatedPerOwner(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	if _, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, err := uc.History(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history for bob, got %+v", history)
	}
}

func TestUsecaseReport(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	res, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := uc.Report(context.Background(), "alice", res.Record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(report.PDF), "%PDF") {
		t.Fatalf("expected PDF bytes, got %q", report.PDF[:min(len(report.PDF), 8)])
	}
	if report.Record.ID != res.Record.ID {
		t.Fatalf("expected record %d, got %d", res.Record.ID, report.Record.ID)
	}
}

func TestUsecaseReportForeignRecordIsNotFound(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	res, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.Report(context.Background(), "bob", res.Record.ID)
	if err == nil {
		t.Fatal("expected a not-found error")
	}
	assertCode(t, err, pkgerror.CodeNotFound)
}

func TestUsecaseReportUnknownID(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase(t)

	_, err := uc.Report(context.Background(), "alice", 999)
	if err == nil {
		t.Fatal("expected a not-found error")
	}
	assertCode(t, err, pkgerror.CodeNotFound)
}

func TestUsecaseReportRendererFailure(t *testing.T) {
	t.Parallel()

	records := store.NewRecords(store.NewMemoryBlobStore(), &seqNumber{}, &seqString{})
	uc := New(Dependency{
		Store:    records,
		Renderer: &stubRenderer{err: errors.New("font missing")},
		ID:       &seqString{},
	})

	res, err := uc.Submit(context.Background(), "alice", "plant.csv", strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.Report(context.Background(), "alice", res.Record.ID)
	if err == nil {
		t.Fatal("expected a server error")
	}
	assertCode(t, err, pkgerror.CodeInternal)
}
