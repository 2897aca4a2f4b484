package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/roster/internal/adapters/http/api"
	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	seen           map[string]bool
	enqueueSuccess bool
	enqueued       []model.Registration
	history        []string
	names          []string
	scores         []repository.Entry
	report         string
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		seen:           make(map[string]bool),
		enqueueSuccess: true,
	}
}

func (m *mockDeps) SeenAndRecord(_ context.Context, id string) bool {
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(_ context.Context, id string) {
	delete(m.seen, id)
}

func (m *mockDeps) Size() int64 {
	return int64(len(m.seen))
}

func (m *mockDeps) Enqueue(_ context.Context, reg model.Registration) bool {
	if !m.enqueueSuccess {
		return false
	}
	m.enqueued = append(m.enqueued, reg)
	return true
}

func (m *mockDeps) History(_ context.Context, limit int) []string {
	if limit > 0 && limit < len(m.history) {
		return m.history[:limit]
	}
	return m.history
}

func (m *mockDeps) Names(_ context.Context) []string {
	return m.names
}

func (m *mockDeps) Scores(_ context.Context) ([]repository.Entry, error) {
	return m.scores, nil
}

func (m *mockDeps) Score(_ context.Context, name string) (repository.Entry, error) {
	for _, e := range m.scores {
		if e.Name == name {
			return e, nil
		}
	}
	return repository.Entry{}, repository.ErrNotFound
}

func (m *mockDeps) Report(_ context.Context) (string, error) {
	return m.report, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	srv := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 100)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return mux
}

func TestPostRegistration(t *testing.T) {
	Convey("Given the registration endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When posting a valid registration", func() {
			rec := post(`{"reg_id":"r1","name":"Alice","score":95}`)

			Convey("Then it is accepted and enqueued", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].Name, ShouldEqual, "Alice")
				So(deps.enqueued[0].Score, ShouldEqual, 95)

				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["status"], ShouldEqual, "accepted")
				So(ack["duplicate"], ShouldEqual, false)
			})
		})

		Convey("When posting the same reg_id twice", func() {
			post(`{"reg_id":"r1","name":"Alice","score":95}`)
			rec := post(`{"reg_id":"r1","name":"Alice","score":95}`)

			Convey("Then the second is reported as duplicate", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.enqueued, ShouldHaveLength, 1)

				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["duplicate"], ShouldEqual, true)
			})
		})

		Convey("When posting without a reg_id", func() {
			rec := post(`{"name":"Bob","score":80}`)

			Convey("Then one is generated server-side", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["reg_id"], ShouldNotBeEmpty)
			})
		})

		Convey("When posting an empty name", func() {
			rec := post(`{"reg_id":"r2","name":"  ","score":10}`)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.enqueued, ShouldBeEmpty)
			})
		})

		Convey("When posting malformed JSON", func() {
			rec := post(`{"name":`)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the queue applies backpressure", func() {
			deps.enqueueSuccess = false
			rec := post(`{"reg_id":"r3","name":"Charlie","score":100}`)

			Convey("Then the request gets 429 and the id is unrecorded", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.seen["r3"], ShouldBeFalse)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRosterViews(t *testing.T) {
	Convey("Given populated roster views", t, func() {
		deps := newMockDeps()
		deps.history = []string{"Alice", "Bob", "Alice", "Charlie", "Diana"}
		deps.names = []string{"Alice", "Bob", "Charlie", "Diana"}
		deps.scores = []repository.Entry{
			{Position: 1, Name: "Alice", Score: 97},
			{Position: 2, Name: "Bob", Score: 80},
			{Position: 3, Name: "Charlie", Score: 100},
			{Position: 4, Name: "Diana", Score: 75},
		}
		mux := newTestMux(deps)

		get := func(path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When fetching the history", func() {
			rec := get("/roster/history")

			Convey("Then order and duplicates are preserved", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var history []string
				So(json.Unmarshal(rec.Body.Bytes(), &history), ShouldBeNil)
				So(history, ShouldResemble, deps.history)
			})
		})

		Convey("When fetching the history with a limit", func() {
			rec := get("/roster/history?limit=2")

			Convey("Then only the first entries come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var history []string
				So(json.Unmarshal(rec.Body.Bytes(), &history), ShouldBeNil)
				So(history, ShouldResemble, []string{"Alice", "Bob"})
			})
		})

		Convey("When the limit is invalid or too large", func() {
			So(get("/roster/history?limit=0").Code, ShouldEqual, http.StatusBadRequest)
			So(get("/roster/history?limit=oops").Code, ShouldEqual, http.StatusBadRequest)
			So(get("/roster/history?limit=101").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching the names", func() {
			rec := get("/roster/names")

			Convey("Then the distinct sorted names come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var names []string
				So(json.Unmarshal(rec.Body.Bytes(), &names), ShouldBeNil)
				So(names, ShouldResemble, deps.names)
			})
		})

		Convey("When fetching all scores", func() {
			rec := get("/scores")

			Convey("Then entries are in ascending name order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var scores []map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &scores), ShouldBeNil)
				So(scores, ShouldHaveLength, 4)
				So(scores[0]["name"], ShouldEqual, "Alice")
				So(scores[0]["score"], ShouldEqual, 97)
			})
		})

		Convey("When fetching a single score", func() {
			rec := get("/scores/Charlie")

			Convey("Then the entry includes its position", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entry map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &entry), ShouldBeNil)
				So(entry["name"], ShouldEqual, "Charlie")
				So(entry["score"], ShouldEqual, 100)
				So(entry["position"], ShouldEqual, 3)
			})
		})

		Convey("When fetching a score for an unknown name", func() {
			So(get("/scores/ghost").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReportAndStats(t *testing.T) {
	Convey("Given a server with a canned report", t, func() {
		deps := newMockDeps()
		deps.report = "All participants (in order of registration):\nAlice\n\nUnique participants:\nAlice\n\nFinal scores:\nAlice : 97\n"
		mux := newTestMux(deps)

		Convey("When fetching the report", func() {
			req := httptest.NewRequest(http.MethodGet, "/report", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the plain-text body is returned verbatim", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/plain")
				So(rec.Body.String(), ShouldEqual, deps.report)
			})
		})

		Convey("When fetching stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the JSON stats come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When scraping /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the Prometheus registry is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
