package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const mainPage = `<html><body>
<div class="wrap_company"><h2><a href="/item/main.naver?code=005930">SamsungElec</a></h2></div>
<div class="today"><em><span class="blind">71,500</span></em></div>
</body></html>`

const sisePage = `<html><body><table class="type2">
<tr><th>date</th><th>close</th></tr>
<tr><td>2024.01.04</td><td>71,500</td></tr>
<tr><td>2024.01.03</td><td>69,800</td></tr>
<tr><td>2024.01.02</td><td>70,100</td></tr>
<tr><td></td></tr>
</table></body></html>`

func testSource(t *testing.T, handler http.HandlerFunc) *NaverSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	n := NewNaverSource("")
	n.BaseURL = srv.URL
	return n
}

func TestFetchCurrent(t *testing.T) {
	n := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mainPage))
	})

	price, label, err := n.FetchCurrent(context.Background(), "005930")
	if err != nil {
		t.Fatalf("fetch current: %v", err)
	}
	if price != 71500 {
		t.Errorf("expected price 71500, got %d", price)
	}
	if label != "SamsungElec" {
		t.Errorf("expected company label, got %q", label)
	}
}

func TestFetchCurrent_NoPriceElement(t *testing.T) {
	n := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>maintenance</body></html>"))
	})

	_, _, err := n.FetchCurrent(context.Background(), "005930")
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Fatalf("expected ErrPriceUnavailable, got %v", err)
	}
}

func TestFetchCurrent_HTTPError(t *testing.T) {
	n := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, _, err := n.FetchCurrent(context.Background(), "005930"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchHistorical(t *testing.T) {
	n := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sisePage))
	})

	series, err := n.FetchHistorical(context.Background(), "005930", 1)
	if err != nil {
		t.Fatalf("fetch historical: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series))
	}
	// Pages list newest first; the result must be ascending.
	for i := 1; i < len(series); i++ {
		if !series[i-1].Time.Before(series[i].Time) {
			t.Fatalf("series not ascending at %d", i)
		}
	}
	if series[0].Price != 70100 || series[2].Price != 71500 {
		t.Errorf("unexpected prices: first=%d last=%d", series[0].Price, series[2].Price)
	}
	if h := series[0].Time.Hour(); h != 0 {
		t.Errorf("historical samples should be midnight-stamped, got hour %d", h)
	}
}

func TestFetchHistorical_PartialOnError(t *testing.T) {
	calls := 0
	n := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sisePage))
	})

	series, err := n.FetchHistorical(context.Background(), "005930", 5)
	if err != nil {
		t.Fatalf("partial historical fetch must not error: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected the first page's 3 samples, got %d", len(series))
	}
	if calls != 2 {
		t.Errorf("paging should stop after the first failure, got %d calls", calls)
	}
}
