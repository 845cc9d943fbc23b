package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/solver-server/internal/calclog"
	"github.com/robalobadob/wordle/apps/solver-server/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver-server/internal/sqlitedb"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

const testDict = "CRANE\nLEMON\nMELON\nDEMON\nROBOT\nSALON\nmoney\n"

type harness struct {
	srv   *Server
	calcs *calclog.Store
	st    store.Store
	t     *testing.T
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	d, err := words.Parse(strings.NewReader(testDict), "test")
	if err != nil {
		t.Fatal(err)
	}
	db, err := sqlitedb.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlitedb.Migrate(db); err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{calcs: calclog.NewStore(db), st: store.NewMemoryStore(), t: t}
	h.srv = New(Options{
		Store:             h.st,
		CalcLog:           h.calcs,
		Words:             words.NewStaticSource(d),
		Metrics:           metrics.New("test"),
		Width:             5,
		Rows:              6,
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		RateLimitRPS:      1000,
		RateLimitBurst:    1000,
	})
	return h
}

// do sends a JSON request and decodes the JSON response into out (if non-nil).
func (h *harness) do(method, path, token string, body any, out any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			h.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

func TestHealthAndNotFound(t *testing.T) {
	h := newHarness(t)
	if rec := h.do(http.MethodGet, "/health", "", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	var nf map[string]string
	rec := h.do(http.MethodGet, "/nope", "", nil, &nf)
	if rec.Code != http.StatusNotFound || nf["error"] != "not_found" {
		t.Fatalf("404 = %d %v", rec.Code, nf)
	}
}

func TestSolve(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{
		"guesses": []map[string]any{
			{"word": "ROBOT", "colors": []string{"gray", "gray", "gray", "green", "gray"}},
			{"pattern": "SALON:bbygg"},
			{"word": "CR_NE", "colors": []string{"gray", "gray", "gray", "gray", "gray"}},
			{"pattern": "??"},
		},
	}
	var res resultRes
	rec := h.do(http.MethodPost, "/solve", "", body, &res)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if res.Count != 1 || len(res.Words) != 1 || res.Words[0] != "LEMON" {
		t.Fatalf("words = %+v", res)
	}
	if res.Used != 2 || len(res.Dropped) != 2 || res.Dropped[0].Index != 2 || res.Dropped[1].Index != 3 {
		t.Fatalf("used/dropped = %d %+v", res.Used, res.Dropped)
	}

	recent, err := h.calcs.Recent(t.Context(), 5)
	if err != nil || len(recent) != 1 || recent[0].Source != calclog.SourceSolve || recent[0].Remaining != 1 {
		t.Fatalf("calclog = %+v, %v", recent, err)
	}
}

func TestSolve_EmptyHistoryReturnsDictionary(t *testing.T) {
	h := newHarness(t)
	var res resultRes
	h.do(http.MethodPost, "/solve", "", map[string]any{}, &res)
	if res.Count != 7 || res.Words[6] != "MONEY" {
		t.Fatalf("res = %+v", res)
	}

	res = resultRes{}
	h.do(http.MethodPost, "/solve", "", map[string]any{"limit": 2}, &res)
	if res.Count != 7 || len(res.Words) != 2 || !res.Truncated {
		t.Fatalf("limited = %+v", res)
	}
}

func TestSolve_CustomDictionary(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{
		"dictionary": []string{"eerie", "three", "there", "tree"},
		"guesses":    []map[string]any{{"pattern": "EERIE:ybgbg"}},
	}
	var res resultRes
	h.do(http.MethodPost, "/solve", "", body, &res)
	if len(res.Words) != 1 || res.Words[0] != "three" {
		t.Fatalf("words = %v", res.Words)
	}
}

func TestSolve_BadRequest(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{"guesses": []map[string]any{{"colors": []string{"gray"}}}}
	if rec := h.do(http.MethodPost, "/solve", "", body, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestFeedback(t *testing.T) {
	h := newHarness(t)
	var res feedbackRes
	rec := h.do(http.MethodPost, "/feedback", "", map[string]string{"guess": "eerie", "secret": "three"}, &res)
	if rec.Code != http.StatusOK || res.Pattern != "EERIE:ybgbg" || res.Known {
		t.Fatalf("feedback = %d %+v", rec.Code, res)
	}
	res = feedbackRes{}
	h.do(http.MethodPost, "/feedback", "", map[string]string{"guess": "robot", "secret": "lemon"}, &res)
	if res.Pattern != "ROBOT:bbbgb" || !res.Known {
		t.Fatalf("known secret = %+v", res)
	}
	var e map[string]string
	rec = h.do(http.MethodPost, "/feedback", "", map[string]string{"guess": "tree", "secret": "three"}, &e)
	if rec.Code != http.StatusBadRequest || e["error"] != "length_mismatch" {
		t.Fatalf("mismatch = %d %v", rec.Code, e)
	}
}

func TestDictionary(t *testing.T) {
	h := newHarness(t)
	var res dictionaryRes
	h.do(http.MethodGet, "/dictionary", "", nil, &res)
	if res.Origin != "test" || res.Words != 7 || res.OfWidth != 7 || res.Width != 5 {
		t.Fatalf("dictionary = %+v", res)
	}
}

func TestSessionFlow(t *testing.T) {
	h := newHarness(t)

	var sess sessionRes
	rec := h.do(http.MethodPost, "/sessions", "", nil, &sess)
	if rec.Code != http.StatusCreated || sess.Token == "" || sess.SessionID == "" {
		t.Fatalf("create = %d %+v", rec.Code, sess)
	}
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].Name != sessionCookieName {
		t.Fatalf("cookies = %v", c)
	}
	tok := sess.Token

	var bv boardView
	rec = h.do(http.MethodPost, "/sessions/current/guesses", tok,
		map[string]any{"word": "robot", "colors": []string{"b", "b", "b", "g", "b"}}, &bv)
	if rec.Code != http.StatusCreated || len(bv.Guesses) != 1 || bv.Guesses[0].Pattern != "ROBOT:bbbgb" {
		t.Fatalf("add = %d %+v", rec.Code, bv)
	}

	// Second row typed without colors, then colored box by box.
	h.do(http.MethodPost, "/sessions/current/guesses", tok, map[string]any{"word": "SALON"}, &bv)
	if !bv.Guesses[1].Complete || bv.Guesses[1].Pattern != "SALON:?????" {
		t.Fatalf("second row = %+v", bv.Guesses[1])
	}
	// Unset -> gray -> yellow -> green.
	clicks := map[int]int{2: 2, 3: 3, 4: 3}
	for col := 0; col < 5; col++ {
		n := clicks[col]
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			rec = h.do(http.MethodPost, "/sessions/current/guesses/1/boxes/"+strconv.Itoa(col)+"/cycle", tok, nil, &bv)
			if rec.Code != http.StatusOK {
				t.Fatalf("cycle = %d %s", rec.Code, rec.Body)
			}
		}
	}
	if bv.Guesses[1].Pattern != "SALON:bbygg" {
		t.Fatalf("after cycling = %s", bv.Guesses[1].Pattern)
	}

	var res resultRes
	rec = h.do(http.MethodPost, "/sessions/current/calculate", tok, nil, &res)
	if rec.Code != http.StatusOK || len(res.Words) != 1 || res.Words[0] != "LEMON" {
		t.Fatalf("calculate = %d %+v", rec.Code, res)
	}

	// Clearing a letter makes the row incomplete; it is skipped.
	h.do(http.MethodPut, "/sessions/current/guesses/1/boxes/0", tok, map[string]string{"letter": ""}, &bv)
	if bv.Guesses[1].Complete {
		t.Fatalf("row should be incomplete: %+v", bv.Guesses[1])
	}
	res = resultRes{}
	h.do(http.MethodPost, "/sessions/current/calculate", tok, nil, &res)
	if res.Used != 1 || len(res.Dropped) != 1 || res.Dropped[0].Index != 1 {
		t.Fatalf("incomplete calc = %+v", res)
	}

	rec = h.do(http.MethodDelete, "/sessions/current/guesses/0", tok, nil, &bv)
	if rec.Code != http.StatusOK || len(bv.Guesses) != 1 {
		t.Fatalf("remove = %d %+v", rec.Code, bv)
	}

	recent, err := h.calcs.Recent(t.Context(), 10)
	if err != nil || len(recent) != 2 || recent[0].SessionID != sess.SessionID {
		t.Fatalf("calclog = %+v %v", recent, err)
	}

	if rec := h.do(http.MethodDelete, "/sessions/current", tok, nil, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := h.do(http.MethodGet, "/sessions/current", tok, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("after delete = %d", rec.Code)
	}
}

func TestSessionErrors(t *testing.T) {
	h := newHarness(t)
	if rec := h.do(http.MethodGet, "/sessions/current", "", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d", rec.Code)
	}
	if rec := h.do(http.MethodGet, "/sessions/current", "garbage", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token = %d", rec.Code)
	}

	var sess sessionRes
	h.do(http.MethodPost, "/sessions", "", nil, &sess)
	tok := sess.Token

	var e map[string]string
	rec := h.do(http.MethodPost, "/sessions/current/guesses", tok, map[string]string{"word": "LONGER"}, &e)
	if rec.Code != http.StatusBadRequest || e["error"] != "bad_word" {
		t.Fatalf("long word = %d %v", rec.Code, e)
	}
	rec = h.do(http.MethodPut, "/sessions/current/guesses/3", tok, map[string]string{"word": "CRANE"}, &e)
	if rec.Code != http.StatusNotFound || e["error"] != "row_not_found" {
		t.Fatalf("missing row = %d %v", rec.Code, e)
	}
	rec = h.do(http.MethodPut, "/sessions/current/guesses/x", tok, map[string]string{"word": "CRANE"}, &e)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad row = %d", rec.Code)
	}

	for i := 0; i < 6; i++ {
		h.do(http.MethodPost, "/sessions/current/guesses", tok, map[string]string{"word": "CRANE"}, nil)
	}
	rec = h.do(http.MethodPost, "/sessions/current/guesses", tok, map[string]string{"word": "CRANE"}, &e)
	if rec.Code != http.StatusConflict || e["error"] != "board_full" {
		t.Fatalf("full = %d %v", rec.Code, e)
	}
}

func TestAdminReload(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/admin/dictionary/reload", nil)
	rec := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no auth = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/dictionary/reload", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password = %d", rec.Code)
	}

	// A static source has no path, so reload swaps in the embedded list.
	req = httptest.NewRequest(http.MethodPost, "/admin/dictionary/reload", nil)
	req.SetBasicAuth("admin", "hunter22")
	rec = httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rec, req)
	var res reloadRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("reload = %d %s", rec.Code, rec.Body)
	}
	if res.Origin != "embedded" || res.Words < 100 {
		t.Fatalf("reload = %+v", res)
	}
}

func TestCalcStats(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodPost, "/solve", "", map[string]any{}, nil)
	h.do(http.MethodPost, "/solve", "", map[string]any{}, nil)

	var res calcStatsRes
	rec := h.do(http.MethodGet, "/stats/calculations?limit=1", "", nil, &res)
	if rec.Code != http.StatusOK || res.Summary.Calculations != 2 || len(res.Recent) != 1 {
		t.Fatalf("stats = %d %+v", rec.Code, res)
	}
	if rec := h.do(http.MethodGet, "/stats/calculations?limit=0", "", nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t)
	h.srv.limits = newLimiter(0.001, 1)
	if rec := h.do(http.MethodPost, "/solve", "", map[string]any{}, nil); rec.Code != http.StatusOK {
		t.Fatalf("first = %d", rec.Code)
	}
	if rec := h.do(http.MethodPost, "/solve", "", map[string]any{}, nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d", rec.Code)
	}
}

func TestCalculate_ChunkedBody(t *testing.T) {
	h := newHarness(t)
	var sess sessionRes
	h.do(http.MethodPost, "/sessions", "", nil, &sess)

	calc := func(body string) (*httptest.ResponseRecorder, resultRes) {
		req := httptest.NewRequest(http.MethodPost, "/sessions/current/calculate", io.NopCloser(strings.NewReader(body)))
		req.ContentLength = -1
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		rec := httptest.NewRecorder()
		h.srv.Handler().ServeHTTP(rec, req)
		var res resultRes
		_ = json.Unmarshal(rec.Body.Bytes(), &res)
		return rec, res
	}

	rec, res := calc(`{"limit":1}`)
	if rec.Code != http.StatusOK || len(res.Words) != 1 || !res.Truncated || res.Count != 7 {
		t.Fatalf("limited = %d %+v", rec.Code, res)
	}
	rec, res = calc("")
	if rec.Code != http.StatusOK || len(res.Words) != 7 {
		t.Fatalf("empty = %d %+v", rec.Code, res)
	}
	if rec, _ := calc("{"); rec.Code != http.StatusBadRequest {
		t.Fatalf("broken json = %d", rec.Code)
	}
}
