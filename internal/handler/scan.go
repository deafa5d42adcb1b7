package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// tagNotFoundMsg names the tag as the client sent it, so unknown and inactive
// tags produce identical bodies.
func tagNotFoundMsg(tagID string) string {
	return fmt.Sprintf("invalid or inactive tag: %s", tagID)
}

// ScanRedirect handles GET /t/{tagID}, the URL written onto the NFC chip.
// Every scan of an active tag is redirected; only the first scan of the
// calendar day increments the tag's visit count.
func (s *Server) ScanRedirect(w http.ResponseWriter, r *http.Request) {
	var tagID string
	err := runtime.BindStyledParameterWithOptions("simple", "tagID", chi.URLParam(r, "tagID"), &tagID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid tag id"))
		return
	}
	s.redirect(w, r, tagID)
}

// ScanRedirectQuery handles GET /redirect?tag_id=..., the query-string form
// of ScanRedirect.
func (s *Server) ScanRedirectQuery(w http.ResponseWriter, r *http.Request) {
	var tagID string
	if err := runtime.BindQueryParameter("form", true, true, "tag_id", r.URL.Query(), &tagID); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("missing tag_id"))
		return
	}
	s.redirect(w, r, tagID)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, tagID string) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	// A zero instant lets the store clock decide the calendar day.
	res, err := s.svc.Scans.RecordScanAndResolve(ctx, tagID, time.Time{})
	if err != nil {
		s.writeError(w, r, err, tagNotFoundMsg(tagID))
		return
	}

	if res.Counted {
		s.logger.DebugContext(r.Context(), "daily visit counted", "tag_id", res.TagID)
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Location", res.RedirectTarget)
	w.WriteHeader(http.StatusFound)
}
