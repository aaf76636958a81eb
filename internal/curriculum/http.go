package curriculum

import (
	"errors"
	"net/http"

	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

// HTTPHandler serves the catalog read endpoints.
type HTTPHandler struct {
	catalog *Catalog
}

// NewHTTPHandler creates catalog handlers.
func NewHTTPHandler(catalog *Catalog) *HTTPHandler {
	return &HTTPHandler{catalog: catalog}
}

// Grades handles GET /v1/catalog
func (h *HTTPHandler) Grades(w http.ResponseWriter, _ *http.Request) {
	httperrors.RespondJSON(w, http.StatusOK, map[string]any{"grades": h.catalog.Grades()})
}

// Subjects handles GET /v1/catalog/{grade}/subjects
func (h *HTTPHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	grade := r.PathValue("grade")
	subjects, err := h.catalog.Subjects(grade)
	if err != nil {
		if errors.Is(err, ErrUnknownGrade) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownGrade, err.Error())
			return
		}
		httperrors.RespondInternalError(w, "Failed to load subjects")
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]any{"grade": grade, "subjects": subjects})
}

// StudyMaterials handles GET /v1/study-materials
func (h *HTTPHandler) StudyMaterials(w http.ResponseWriter, _ *http.Request) {
	httperrors.RespondJSON(w, http.StatusOK, map[string]any{"groups": h.catalog.StudyMaterials()})
}
