// Package fixture serves canned recommendation responses so the client can be
// demonstrated and tested without the real service.
package fixture

import (
	"embed"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:embed responses/*.json
var responses embed.FS

// Names lists the built-in fixtures.
func Names() []string {
	entries, err := responses.ReadDir("responses")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Load returns the raw JSON of a built-in fixture.
func Load(name string) ([]byte, error) {
	data, err := responses.ReadFile(path.Join("responses", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("unknown fixture %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Handler answers GET /auto-recommend with body. Like the real service it
// rejects requests missing did, wid or eid with 422.
func Handler(body []byte, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/auto-recommend", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, `{"detail":"Method Not Allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		query := r.URL.Query()
		for _, key := range []string{"did", "wid", "eid"} {
			if strings.TrimSpace(query.Get(key)) == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnprocessableEntity)
				fmt.Fprintf(w, `{"detail":"missing query parameter %s"}`, key)
				return
			}
		}
		logger.Info("instruction received", zap.String("instruction", query.Get("instruction")))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	return requestLogging(logger)(mux)
}

func requestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &statusCapturingWriter{ResponseWriter: w}

			next.ServeHTTP(lw, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", lw.statusCode()),
				zap.Int("bytes", lw.bytes),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}

type statusCapturingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusCapturingWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusCapturingWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusCapturingWriter) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
