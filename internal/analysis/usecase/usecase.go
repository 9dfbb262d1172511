package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgerror"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkguid"
)

const (
	historyLimit = 5
	previewLimit = 10
)

// RecordStore persists analysis records together with the submitted file bytes.
type RecordStore interface {
	Create(ctx context.Context, owner, fileName string, file []byte, stats entity.Stats) (entity.Record, error)
	ListRecent(ctx context.Context, owner string, limit int) ([]entity.Record, error)
	GetByID(ctx context.Context, owner string, id int64) (entity.Record, error)
	ReadFile(ctx context.Context, rec entity.Record) ([]byte, error)
}

// Renderer produces the PDF report for a record.
type Renderer interface {
	Render(ctx context.Context, rec entity.Record, file []byte) ([]byte, error)
}

// EventPublisher emits audit events after successful submissions.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.RecordCreatedEvent) error
}

// Runner schedules background work (audit publication).
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Dependency struct {
	Store    RecordStore
	Renderer Renderer
	Events   EventPublisher
	Runner   Runner
	ID       pkguid.StringID
	RootCtx  context.Context
}

// Usecase orchestrates the analysis pipeline: parse, validate, aggregate,
// persist, and later render reports.
type Usecase struct {
	store    RecordStore
	renderer Renderer
	events   EventPublisher
	runner   Runner
	id       pkguid.StringID
	rootCtx  context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	return &Usecase{
		store:    dep.Store,
		renderer: dep.Renderer,
		events:   dep.Events,
		runner:   dep.Runner,
		id:       dep.ID,
		rootCtx:  root,
	}
}

// Submit is the single write path: it parses and validates the CSV, computes
// the aggregates, persists the record, and returns stats, a preview, and the
// caller's updated history. Any failure before Create leaves no record.
func (u *Usecase) Submit(ctx context.Context, owner, fileName string, r io.Reader) (SubmitResult, error) {
	if u.store == nil {
		return SubmitResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if owner == "" {
		return SubmitResult{}, pkgerror.NewInvalidInput(errors.New("owner is required"))
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return SubmitResult{}, pkgerror.NewServer(err)
	}

	ds, err := entity.ParseDataset(bytes.NewReader(raw))
	if err != nil {
		return SubmitResult{}, pkgerror.NewInvalidInput(err)
	}

	if missing := ds.MissingColumns(); len(missing) > 0 {
		return SubmitResult{}, pkgerror.NewInvalidInput(
			fmt.Errorf("missing columns: %s", strings.Join(missing, ", ")))
	}

	stats, err := aggregate(ds)
	if err != nil {
		return SubmitResult{}, pkgerror.NewInvalidInput(err)
	}

	rec, err := u.store.Create(ctx, owner, fileName, raw, stats)
	if err != nil {
		return SubmitResult{}, normalizeErr(err)
	}

	u.publishCreated(rec)

	history, err := u.store.ListRecent(ctx, owner, historyLimit)
	if err != nil {
		return SubmitResult{}, normalizeErr(err)
	}

	return SubmitResult{
		Record:  rec,
		Stats:   stats,
		Preview: ds.RowMaps(previewLimit),
		History: history,
	}, nil
}

// History returns the caller's most recent records, newest first.
func (u *Usecase) History(ctx context.Context, owner string) ([]entity.Record, error) {
	if owner == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("owner is required"))
	}

	history, err := u.store.ListRecent(ctx, owner, historyLimit)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return history, nil
}

// Report renders the PDF for one of the caller's records. A record owned by
// someone else is reported as not found: existence must not leak.
func (u *Usecase) Report(ctx context.Context, owner string, id int64) (ReportResult, error) {
	if owner == "" {
		return ReportResult{}, pkgerror.NewInvalidInput(errors.New("owner is required"))
	}

	rec, err := u.store.GetByID(ctx, owner, id)
	if err != nil {
		return ReportResult{}, mapStoreErr(err)
	}

	file, err := u.store.ReadFile(ctx, rec)
	if err != nil {
		return ReportResult{}, normalizeErr(err)
	}

	pdf, err := u.renderer.Render(ctx, rec, file)
	if err != nil {
		return ReportResult{}, normalizeErr(err)
	}

	return ReportResult{Record: rec, PDF: pdf}, nil
}

func (u *Usecase) publishCreated(rec entity.Record) {
	if u.events == nil || u.runner == nil || u.id == nil {
		return
	}

	event := entity.RecordCreatedEvent{
		EventID:    u.id.Generate(),
		RecordID:   rec.ID,
		Owner:      rec.Owner,
		FileName:   rec.FileName,
		TotalCount: rec.Stats.TotalCount,
	}

	u.runner.Go(u.rootCtx, func(ctx context.Context) error {
		if err := u.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish record created event",
				"event_id", event.EventID, "record_id", event.RecordID, "error", err)
		}
		return nil
	})
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("report not found or access denied", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
