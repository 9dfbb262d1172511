package pkgrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestChainOrder(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("mw1"), mw("mw2"))

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if !reflect.DeepEqual(order, []string{"mw1", "mw2", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestGetParam(t *testing.T) {
	params := httprouter.Params{{Key: "id", Value: "123"}}
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, params)

	if got := GetParam(ctx, "id"); got != "123" {
		t.Fatalf("expected id=123, got %q", got)
	}
}

type pdfResponse struct{}

func (pdfResponse) ContentType() string { return "application/pdf" }
func (pdfResponse) Content() []byte     { return []byte("%PDF-1.4 fake") }
func (pdfResponse) Disposition() string { return `inline; filename="report_1.pdf"` }

func TestRouterBinaryResponse(t *testing.T) {
	router := NewRouter(nil)
	router.GET("/file", func(ctx context.Context, r *http.Request) (any, error) {
		return pdfResponse{}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/file", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `inline; filename="report_1.pdf"` {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if got := rec.Body.String(); got != "%PDF-1.4 fake" {
		t.Fatalf("unexpected body: %q", got)
	}
}
