package inbound

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgauth"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgerror"
	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgrouter"
)

const defaultFileName = "upload.csv"

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Analyze(ctx context.Context, r *http.Request) (any, error) {
	identity, ok := pkgauth.GetIdentity(ctx)
	if !ok {
		return nil, pkgerror.NewUnauthorized()
	}

	reader, fileName, cleanup, err := extractCSVReader(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Submit(ctx, identity.Username, fileName, reader)
	if err != nil {
		return nil, err
	}

	return toSubmitResponse(result), nil
}

func (h *HTTPEndpoint) History(ctx context.Context, r *http.Request) (any, error) {
	identity, ok := pkgauth.GetIdentity(ctx)
	if !ok {
		return nil, pkgerror.NewUnauthorized()
	}

	history, err := h.uc.History(ctx, identity.Username)
	if err != nil {
		return nil, err
	}

	return HistoryResponse{History: toHistoryItems(history)}, nil
}

func (h *HTTPEndpoint) Report(ctx context.Context, r *http.Request) (any, error) {
	identity, ok := pkgauth.GetIdentity(ctx)
	if !ok {
		return nil, pkgerror.NewUnauthorized()
	}

	// A non-numeric id cannot name a record, so it gets the same answer as an
	// unknown one.
	id, err := strconv.ParseInt(pkgrouter.GetParam(ctx, "id"), 10, 64)
	if err != nil {
		return nil, pkgerror.NewBusiness("report not found or access denied", pkgerror.CodeNotFound)
	}

	result, err := h.uc.Report(ctx, identity.Username, id)
	if err != nil {
		return nil, err
	}

	return ReportResponse{recordID: result.Record.ID, pdf: result.PDF}, nil
}

func extractCSVReader(r *http.Request) (io.Reader, string, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	if r.Body == nil {
		return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return r.Body, defaultFileName, func() {}, nil
}

func extractMultipartFile(r *http.Request) (io.Reader, string, func(), error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return nil, "", func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			fileName := filepath.Base(part.FileName())
			if fileName == "" || fileName == "." {
				fileName = defaultFileName
			}
			return part, fileName, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}
