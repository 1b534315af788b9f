package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/transport"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, LanguageInfos(s.languages))
}

// LanguageInfos describes every registered language and whether its tools
// are installed.
func LanguageInfos(reg *lang.Registry) []api.LanguageInfo {
	strategies := reg.Strategies()
	out := make([]api.LanguageInfo, 0, len(strategies))
	for _, st := range strategies {
		l := st.Language()
		available := true
		for _, ts := range lang.Check(st) {
			if ts.Err != nil {
				available = false
			}
		}
		out = append(out, api.LanguageInfo{
			ID:        string(l.ID),
			Name:      l.Name,
			Kind:      l.Kind.String(),
			Aliases:   l.Aliases(),
			Available: available,
		})
	}
	return out
}

// handleEvaluate runs a submission synchronously. With ?format=chat the
// reply is the plain-text chat report instead of JSON.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req api.EvalReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	resp := transport.Handle(r.Context(), s.engine, req, nil)

	if r.URL.Query().Get("format") == "chat" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(statusFor(resp))
		if _, err := io.WriteString(w, api.ChatReport(resp)); err != nil {
			s.logger.Error("failed to write response", "status", statusFor(resp), "error", err)
		}
		return
	}
	s.writeJSON(w, statusFor(resp), resp)
}

func statusFor(resp api.EvalResponse) int {
	if resp.Ok {
		return http.StatusOK
	}
	switch resp.ErrorKind {
	case api.ConfigurationError:
		return http.StatusBadRequest
	case api.LookupError:
		return http.StatusNotFound
	case api.DataError:
		return http.StatusUnprocessableEntity
	case api.WorkspaceError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
