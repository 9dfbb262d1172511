package analysis

import (
	"context"
	"time"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/event"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/inbound"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/report"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/store"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/usecase"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgauth"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgconfig"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgrouter"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgroutine"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

// New wires the analysis module: blob storage, record store, PDF renderer,
// audit pipeline, and the HTTP endpoints behind token authentication.
//
// The returned closer drains the audit consumer.
func New(dep Dependency) (func(context.Context) error, error) {
	blobs, err := store.NewFSBlobStore(dep.Config.GetString("storage.dir"))
	if err != nil {
		return nil, err
	}

	ids, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, err
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	records := store.NewRecords(blobs, ids, dep.ID)

	bus := event.NewBus(512)
	consumer := event.NewAuditConsumer(bus, event.LogAuditor{}, event.ConsumerConfig{
		Workers:     4,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:    records,
		Renderer: report.NewPDF(nil),
		Events:   bus,
		Runner:   dep.Goroutine,
		ID:       dep.ID,
		RootCtx:  dep.Context,
	})

	verifier := pkgauth.NewStaticVerifier(dep.Config.GetMap("auth.tokens"))
	inbound.RegisterHTTPEndpoint(dep.Router, uc, pkgauth.Middleware(verifier))

	return consumer.Stop, nil
}
