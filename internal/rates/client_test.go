package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const sampleBody = `[
	{"Ccy":"USD","CcyNm_EN":"US Dollar","Rate":"12650.42","Diff":"12.50","Date":"02.06.2025"},
	{"Ccy":"EUR","CcyNm_EN":"Euro","Rate":"13720.00","Diff":"-8.10","Date":"02.06.2025"},
	{"Ccy":"JPY","CcyNm_EN":"Japanese Yen","Rate":"not-a-number","Diff":"0","Date":"02.06.2025"},
	{"Ccy":"CHF","CcyNm_EN":"Swiss Franc","Rate":"14100.10","Diff":"","Date":"02.06.2025"}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", zap.NewNop())
}

func TestFetchAll(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(sampleBody))
	})

	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	rates := c.FetchAll(context.Background(), date)

	if gotPath != "/2025-06-02/" {
		t.Errorf("request path = %q, want /2025-06-02/", gotPath)
	}
	// JPY has an unparseable rate and must be dropped.
	if len(rates) != 3 {
		t.Fatalf("len = %d, want 3", len(rates))
	}
	if rates[0].Code != "USD" || rates[0].Value.String() != "12650.42" {
		t.Errorf("first rate = %+v", rates[0])
	}
	if rates[1].Diff.Sign() != -1 {
		t.Errorf("EUR diff sign = %d, want negative", rates[1].Diff.Sign())
	}
	// Empty Diff parses as flat.
	if !rates[2].Diff.IsZero() {
		t.Errorf("CHF diff = %s, want 0", rates[2].Diff)
	}
}

func TestFetchAllNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if got := c.FetchAll(context.Background(), time.Now()); len(got) != 0 {
		t.Fatalf("want empty on non-200, got %d records", len(got))
	}
}

func TestFetchAllBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})
	if got := c.FetchAll(context.Background(), time.Now()); len(got) != 0 {
		t.Fatalf("want empty on bad body, got %d records", len(got))
	}
}

func TestFetchAllUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := New(srv.URL+"/", zap.NewNop())
	if got := c.FetchAll(context.Background(), time.Now()); len(got) != 0 {
		t.Fatalf("want empty on transport error, got %d records", len(got))
	}
}

func TestFetchByCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	})

	r, ok := c.FetchByCode(context.Background(), "EUR", time.Now())
	if !ok {
		t.Fatal("EUR should be found")
	}
	if r.Name != "Euro" {
		t.Errorf("name = %q", r.Name)
	}

	if _, ok := c.FetchByCode(context.Background(), "ZZZ", time.Now()); ok {
		t.Fatal("ZZZ should not be found")
	}
}
