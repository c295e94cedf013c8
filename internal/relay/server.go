package relay

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"didauth/internal/domain"
)

const (
	maxBodyBytes = 64 << 10
	// DefaultMaxQueue caps the envelopes held per DID.
	DefaultMaxQueue = 256
)

// Server queues challenge envelopes per DID in memory.
type Server struct {
	mu     sync.Mutex
	queues map[domain.DID][]domain.ChallengeEnvelope

	maxQueue int
	log      zerolog.Logger
	now      func() time.Time
	gatherer prometheus.Gatherer

	enqueued prometheus.Counter
	fetched  prometheus.Counter
	acked    prometheus.Counter
	depth    prometheus.Gauge
}

// NewServer builds a relay server. When reg is non-nil its metrics are
// registered there and served from /metrics.
func NewServer(log zerolog.Logger, reg *prometheus.Registry) *Server {
	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	f := promauto.With(registerer)
	return &Server{
		queues:   make(map[domain.DID][]domain.ChallengeEnvelope),
		maxQueue: DefaultMaxQueue,
		log:      log,
		now:      time.Now,
		gatherer: gatherer,
		enqueued: f.NewCounter(prometheus.CounterOpts{
			Namespace: "didauth_relay", Name: "envelopes_enqueued_total",
			Help: "Envelopes accepted.",
		}),
		fetched: f.NewCounter(prometheus.CounterOpts{
			Namespace: "didauth_relay", Name: "envelopes_fetched_total",
			Help: "Envelopes returned to fetchers.",
		}),
		acked: f.NewCounter(prometheus.CounterOpts{
			Namespace: "didauth_relay", Name: "envelopes_acked_total",
			Help: "Envelopes dropped by acknowledgement.",
		}),
		depth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "didauth_relay", Name: "queued_envelopes",
			Help: "Envelopes currently queued across all DIDs.",
		}),
	}
}

// Handler returns the relay's HTTP routes wrapped in an access log.
//
//	POST /challenge/{did}            enqueue one envelope
//	GET  /challenge/{did}?limit=N    list up to N queued envelopes
//	POST /challenge/{did}/ack        {"count": N} drop the first N
//	GET  /metrics                    Prometheus metrics
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /challenge/{did}", s.handleDeliver)
	mux.HandleFunc("GET /challenge/{did}", s.handleFetch)
	mux.HandleFunc("POST /challenge/{did}/ack", s.handleAck)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return s.accessLog(mux)
}

func (s *Server) handleDeliver(w http.ResponseWriter, r *http.Request) {
	did := domain.DID(r.PathValue("did"))
	var env domain.ChallengeEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&env); err != nil {
		http.Error(w, "bad envelope", http.StatusBadRequest)
		return
	}
	if len(env.Ciphertext) == 0 || (env.DIDAddress != "" && env.DIDAddress != did) {
		http.Error(w, "bad envelope", http.StatusBadRequest)
		return
	}
	env.DIDAddress = did
	if env.CreatedAt == 0 {
		env.CreatedAt = s.now().Unix()
	}

	s.mu.Lock()
	if len(s.queues[did]) >= s.maxQueue {
		s.mu.Unlock()
		http.Error(w, "queue full", http.StatusTooManyRequests)
		return
	}
	s.queues[did] = append(s.queues[did], env)
	s.mu.Unlock()

	s.enqueued.Inc()
	s.depth.Inc()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	did := domain.DID(r.PathValue("did"))
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	s.mu.Lock()
	q := s.queues[did]
	if limit == 0 || limit > len(q) {
		limit = len(q)
	}
	out := append([]domain.ChallengeEnvelope{}, q[:limit]...)
	s.mu.Unlock()

	s.fetched.Add(float64(len(out)))
	writeJSON(w, out)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	did := domain.DID(r.PathValue("did"))
	var req ackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Count < 0 {
		http.Error(w, "bad ack", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	q := s.queues[did]
	n := min(req.Count, len(q))
	if n == len(q) {
		delete(s.queues, did)
	} else {
		s.queues[did] = q[n:]
	}
	s.mu.Unlock()

	s.acked.Add(float64(n))
	s.depth.Sub(float64(n))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
