package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrender/internal/styles"
	"github.com/dgallion1/docrender/internal/theme"
	"github.com/go-chi/chi/v5"
)

const maxThemeBytes = 1 << 20

type roleInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	HeadingLevel int    `json:"heading_level,omitempty"`
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles := make([]roleInfo, 0, len(theme.Roles()))
	for _, role := range theme.Roles() {
		kind := "paragraph"
		if !role.Paragraph() {
			kind = "character"
		}
		roles = append(roles, roleInfo{
			ID:           role.ID(),
			Name:         styles.DisplayName(role),
			Type:         kind,
			HeadingLevel: role.HeadingLevel(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"roles": roles})
}

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"themes":  s.orchestrator.Themes().Names(),
		"default": s.cfg.DefaultTheme,
	})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, ok := s.orchestrator.Themes().Get(chi.URLParam(r, "name"))
	if !ok {
		jsonError(w, "theme not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// handleValidateTheme checks a JSON or YAML theme body. YAML is chosen by a
// format=yaml query parameter or a yaml content type.
func (s *Server) handleValidateTheme(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" && strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = "yaml"
	}
	t, err := decodeTheme(http.MaxBytesReader(w, r.Body, maxThemeBytes), "", format)
	if err != nil {
		writeThemeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"valid": true, "name": t.Name})
}

// decodeTheme reads and validates a theme. The format comes from filename's
// extension when given, else from format ("yaml" or JSON by default).
func decodeTheme(r io.Reader, filename, format string) (theme.Theme, error) {
	f := theme.FormatJSON
	switch {
	case filename != "":
		var err error
		if f, err = theme.FormatForFile(filename); err != nil {
			return theme.Theme{}, err
		}
	case strings.EqualFold(format, "yaml") || strings.EqualFold(format, "yml"):
		f = theme.FormatYAML
	}

	t, err := theme.Decode(r, f)
	if err != nil {
		return theme.Theme{}, err
	}
	if t.Name == "" && filename != "" {
		base := filepath.Base(filename)
		t.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := theme.Validate(t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// writeThemeError reports validation failures as 422 with every violation
// and anything else as a bad request.
func writeThemeError(w http.ResponseWriter, err error) {
	var cfgErr *theme.ConfigurationError
	if !errors.As(err, &cfgErr) {
		jsonError(w, "invalid theme: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]any{
		"valid":      false,
		"error":      cfgErr.Error(),
		"violations": cfgErr.Violations,
	})
}
