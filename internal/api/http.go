// Package api exposes the preference manager over HTTP and MCP so editor
// panes, tooling, and agents can read and change preferences out of process.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-ide/inkwell/internal/dispatch"
	"github.com/inkwell-ide/inkwell/internal/prefs"
)

const maxBodySize = 1 << 20 // 1MB

// Deps holds dependencies for the HTTP layer.
type Deps struct {
	Prefs *prefs.Manager
	// UI marshals UI-domain-only reads (observable creation, style
	// strings) onto the dispatch loop.
	UI dispatch.Runner
	// Instance identifies this daemon process in health responses.
	Instance string
}

// NewHandler builds the preference API router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(deps))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/flags", handleListFlags(deps))
		r.Get("/flags/{name}", handleGetFlag(deps))
		r.Put("/flags/{name}", handlePutFlag(deps))

		r.Get("/font/editor", handleGetEditorFont(deps))
		r.Put("/font/editor", handlePutEditorFont(deps))
		r.Get("/font/stride", handleGetStrideFont(deps))
		r.Put("/font/stride", handlePutStrideFont(deps))
		r.Get("/style", handleGetStyle(deps))

		r.Get("/highlight-strength", handleGetHighlightStrength(deps))
		r.Put("/highlight-strength", handlePutHighlightStrength(deps))

		r.Get("/recent", handleListRecent(deps))
		r.Post("/recent", handleAddRecent(deps))

		r.Get("/project-dir", handleGetProjectDir(deps))
		r.Put("/project-dir", handlePutProjectDir(deps))

		r.Get("/navigator", handleGetNavigator(deps))
		r.Put("/navigator", handlePutNavigator(deps))
	})

	return r
}

// onUI runs fn on the UI domain and waits for it. HTTP handlers serve on
// arbitrary goroutines, so UI-domain-only state is read through here.
func onUI(ui dispatch.Runner, fn func()) {
	done := make(chan struct{})
	ui.RunLater(func() {
		defer close(done)
		fn()
	})
	<-done
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"instance": deps.Instance,
		})
	}
}

func handleListFlags(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Prefs.Flags())
	}
}

func handleGetFlag(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		// Unknown means off; flag reads never fail.
		writeJSON(w, http.StatusOK, map[string]any{
			"name":  name,
			"value": deps.Prefs.Flag(name),
		})
	}
}

func handlePutFlag(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value *bool `json:"value"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Value == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "value is required")
			return
		}
		deps.Prefs.SetFlag(chi.URLParam(r, "name"), *req.Value)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetEditorFont(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"size":   deps.Prefs.EditorFontSize().Get(),
			"family": deps.Prefs.EditorFontFamily().Get(),
		})
	}
}

func handlePutEditorFont(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Size int `json:"size"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Size <= 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "size must be positive, got %d", req.Size)
			return
		}
		deps.Prefs.SetEditorFontSize(req.Size)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetStrideFont(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var size int
		onUI(deps.UI, func() {
			size = deps.Prefs.StrideFontSize().Get()
		})
		writeJSON(w, http.StatusOK, map[string]any{"size": size})
	}
}

func handlePutStrideFont(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Size int `json:"size"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		// The stride setter does not clamp, so validate at the surface.
		if req.Size < prefs.MinFontSize || req.Size > prefs.MaxFontSize {
			httpError(w, http.StatusBadRequest, "invalid_request_error",
				"size must be in [%d,%d], got %d", prefs.MinFontSize, prefs.MaxFontSize, req.Size)
			return
		}
		onUI(deps.UI, func() {
			deps.Prefs.StrideFontSize().Set(req.Size)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetStyle(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeFamily := r.URL.Query().Get("family") == "true"
		var style string
		onUI(deps.UI, func() {
			style = deps.Prefs.StyleDeclaration(includeFamily)
		})
		writeJSON(w, http.StatusOK, map[string]string{"style": style})
	}
}

func handleGetHighlightStrength(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"strength": deps.Prefs.HighlightStrength().Get(),
		})
	}
}

func handlePutHighlightStrength(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Strength *int `json:"strength"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Strength == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "strength is required")
			return
		}
		deps.Prefs.SetHighlightStrength(*req.Strength)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListRecent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"projects": deps.Prefs.RecentProjects(),
		})
	}
}

func handleAddRecent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Path == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "path is required")
			return
		}
		deps.Prefs.AddRecentProject(req.Path)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetProjectDir(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"path": deps.Prefs.ProjectDirectory(),
		})
	}
}

func handlePutProjectDir(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Path == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "path is required")
			return
		}
		deps.Prefs.SetProjectDirectory(req.Path)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetNavigator(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{
			"expanded": deps.Prefs.NavigatorExpanded(),
		})
	}
}

func handlePutNavigator(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Expanded *bool `json:"expanded"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Expanded == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "expanded is required")
			return
		}
		deps.Prefs.SetNavigatorExpanded(*req.Expanded)
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
