package inbound

import (
	"context"
	"io"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/entity"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/analysis/usecase"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgrouter"
)

type uc interface {
	Submit(ctx context.Context, owner, fileName string, r io.Reader) (usecase.SubmitResult, error)
	History(ctx context.Context, owner string) ([]entity.Record, error)
	Report(ctx context.Context, owner string, id int64) (usecase.ReportResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, auth pkgrouter.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/analyze", end.Analyze, auth)
	r.GET("/analyze", end.History, auth)
	r.GET("/report/:id", end.Report, auth)
}
