package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// GetTagRoute handles GET /tags/route?tag_id=...
// It resolves the tag like a scan would but records nothing.
func (s *Server) GetTagRoute(w http.ResponseWriter, r *http.Request) {
	var tagID string
	if err := runtime.BindQueryParameter("form", true, true, "tag_id", r.URL.Query(), &tagID); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("missing tag_id"))
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	res, err := s.svc.Resolver.Resolve(ctx, tagID)
	if err != nil {
		s.writeError(w, r, err, tagNotFoundMsg(tagID))
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, RouteResponse{
		TagID:          res.TagID,
		BusinessID:     res.BusinessID,
		RedirectTarget: res.RedirectTarget,
		DeepLink:       res.DeepLink,
	})
}

// RegisterTag handles POST /tags.
// Returns 201 when the tag was created and 200 when an existing tag was
// overwritten.
func (s *Server) RegisterTag(w http.ResponseWriter, r *http.Request) {
	var req RegisterTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := s.storeContext(r)
	defer cancel()

	res, err := s.svc.Registrar.Register(ctx, req.AdminKey, domain.Registration{
		TagID:          req.TagID,
		BusinessID:     req.BusinessID,
		Status:         domain.TagStatus(req.Status),
		RedirectTarget: req.RedirectTarget,
	})
	if err != nil {
		s.writeError(w, r, err, "tag not found")
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
		s.logger.InfoContext(r.Context(), "tag registered", "tag_id", res.Tag.ID)
	}
	writeJSON(w, status, RegisterTagResponse{Created: res.Created, Tag: tagToResponse(res.Tag)})
}

func tagToResponse(t domain.Tag) TagResponse {
	return TagResponse{
		TagID:          t.ID,
		BusinessID:     t.BusinessID,
		Status:         string(t.Status),
		RedirectTarget: t.RedirectTarget,
		VisitCount:     t.VisitCount,
		LastVisitAt:    t.LastVisitAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
