package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/history"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/words"
)

func TestMain(m *testing.M) {
	if err := words.Init(""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.FilterWorkers = 3
	return cfg
}

func newTestServer(t *testing.T, withHistory bool) *Server {
	t.Helper()
	var hist *history.Store
	if withHistory {
		db, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, history.Migrate(db))
		hist = history.NewStore(db)
	}
	return New(testConfig(), store.NewMemoryStore(), hist)
}

func do(t *testing.T, s *Server, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	rec = do(t, s, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = do(t, s, http.MethodOptions, "/words/eligible", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEligible(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/words/eligible?wrong=ll&correct=a____", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[eligibleRes](t, rec)

	assert.Contains(t, res.Words, "allow")
	assert.Contains(t, res.Words, "alloy")
	assert.NotContains(t, res.Words, "almost")
	assert.Equal(t, len(res.Words), res.Count)
	require.NotNil(t, res.Evidence.Wrong)
	assert.Nil(t, res.Evidence.Invalid)

	p := predicate.New(res.Evidence)
	assert.Equal(t, p.Filter(words.All()), res.Words, "same words, same order")
}

func TestEligible_NoEvidenceReturnsEverything(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/words/eligible", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[eligibleRes](t, rec)
	assert.Equal(t, words.All(), res.Words)
}

func TestEligible_EmptyEvidenceReturnsEverything(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/words/eligible?correct=_____&wrong=&invalid=", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[eligibleRes](t, rec)
	assert.Equal(t, words.All(), res.Words)
	require.NotNil(t, res.Evidence.Wrong)
	assert.Empty(t, *res.Evidence.Wrong)
}

func TestEligible_Invalid(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/words/eligible?invalid=x", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[eligibleRes](t, rec)
	assert.NotContains(t, res.Words, "boxer")
	assert.Contains(t, res.Words, "boner")
}

func TestRandom(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/words/random", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[randomRes](t, rec).Words, 1)

	rec = do(t, s, http.MethodGet, "/words/random?count=4", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[randomRes](t, rec).Words
	require.Len(t, got, 4)
	seen := map[string]bool{}
	for _, w := range got {
		assert.False(t, seen[w])
		seen[w] = true
		assert.True(t, words.IsKnown(w))
	}

	for _, q := range []string{"count=0", "count=-2", "count=abc", "count=100000"} {
		rec = do(t, s, http.MethodGet, "/words/random?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, false)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }

	rec := do(t, s, http.MethodGet, "/words/daily", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[dailyRes](t, rec)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.True(t, words.IsKnown(first.Word))

	rec = do(t, s, http.MethodGet, "/words/daily", "", "")
	assert.Equal(t, first, decode[dailyRes](t, rec))
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/game/new", `{"answer":"crane"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	ng := decode[newGameRes](t, rec)
	require.NotEmpty(t, ng.GameID)
	assert.Equal(t, 5, ng.Cols)

	rec = do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"slate"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	gr := decode[guessRes](t, rec)
	assert.Equal(t, []game.Mark{game.MarkMiss, game.MarkMiss, game.MarkHit, game.MarkMiss, game.MarkHit}, gr.Marks)
	assert.Equal(t, "playing", gr.State)
	assert.Empty(t, gr.Answer)

	rec = do(t, s, http.MethodGet, "/game/"+ng.GameID+"/candidates", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cr := decode[candidatesRes](t, rec)
	require.NotNil(t, cr.Evidence.Correct)
	assert.Equal(t, "__a_e", *cr.Evidence.Correct)
	assert.Contains(t, cr.Words, "crane")
	assert.NotContains(t, cr.Words, "slate")

	rec = do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"zzzzz"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"crane"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	gr = decode[guessRes](t, rec)
	assert.Equal(t, "won", gr.State)
	assert.Equal(t, "crane", gr.Answer)

	// Finished games are evicted once the answer is out.
	rec = do(t, s, http.MethodPost, "/game/guess", `{"gameId":"`+ng.GameID+`","guess":"crane"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/game/"+ng.GameID+"/candidates", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGame_Body(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/game/new", `{"answer":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_json")

	rec = do(t, s, http.MethodPost, "/game/new", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[newGameRes](t, rec).GameID)
}

func TestGame_ConcurrentGuessesAndCandidates(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/game/new", `{"answer":"crane"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[newGameRes](t, rec).GameID

	const n = 8
	guessBody := `{"gameId":"` + id + `","guess":"slate"}`
	guessCodes := make([]int, n)
	var (
		wg       sync.WaitGroup
		lostSeen sync.Map
	)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec := do(t, s, http.MethodPost, "/game/guess", guessBody, "")
			guessCodes[i] = rec.Code
			if rec.Code == http.StatusOK {
				if gr := decode[guessRes](t, rec); gr.State == "lost" {
					lostSeen.Store(i, gr.Answer)
				}
			}
		}()
		go func() {
			defer wg.Done()
			rec := do(t, s, http.MethodGet, "/game/"+id+"/candidates", "", "")
			if rec.Code == http.StatusNotFound {
				return
			}
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, decode[candidatesRes](t, rec).Words, "crane")
		}()
	}
	wg.Wait()

	accepted := 0
	for _, code := range guessCodes {
		switch code {
		case http.StatusOK:
			accepted++
		case http.StatusConflict, http.StatusNotFound:
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 6, accepted, "exactly one guess per row")

	losses := 0
	lostSeen.Range(func(_, answer any) bool {
		losses++
		assert.Equal(t, "crane", answer)
		return true
	})
	assert.Equal(t, 1, losses)

	rec = do(t, s, http.MethodGet, "/game/"+id+"/candidates", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGame_Errors(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/game/guess", `{`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", `{"gameId":"missing","guess":"crane"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/missing/candidates", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	s := newTestServer(t, true)
	tok, _, err := SignToken(s.cfg.JWTSecret, "alice", time.Hour)
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/history", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/history", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, _, err := SignToken("some other secret", "alice", time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/history", "", other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/words/eligible?wrong=ll", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	matched := decode[eligibleRes](t, rec).Count

	// Guest queries land under the anonymous subject.
	rec = do(t, s, http.MethodGet, "/words/eligible?invalid=x", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/history", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]history.Entry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Subject)
	assert.Equal(t, matched, entries[0].Matches)
	require.NotNil(t, entries[0].Wrong)
	assert.Equal(t, "ll", *entries[0].Wrong)
	assert.Nil(t, entries[0].Correct)

	rec = do(t, s, http.MethodGet, "/history?limit=zero", "", tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory_Disabled(t *testing.T) {
	s := newTestServer(t, false)
	tok, _, err := SignToken(s.cfg.JWTSecret, "bob", time.Hour)
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/history", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignToken_Expired(t *testing.T) {
	tok, _, err := SignToken("secret", "carol", -time.Minute)
	require.NoError(t, err)
	_, err = parseSubject("secret", tok)
	assert.Error(t, err)

	_, _, err = SignToken("secret", "", time.Hour)
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, false)
	_ = do(t, s, http.MethodGet, "/words/eligible?wrong=e", "", "")

	rec := do(t, s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordle_helper_eligible_queries_total 1")
}
