package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/frameloom/pkg/breakpoint"
	"github.com/matzehuels/frameloom/pkg/component"
	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/errors"
	"github.com/matzehuels/frameloom/pkg/property"
	"github.com/matzehuels/frameloom/pkg/selection"
	"github.com/matzehuels/frameloom/pkg/snapshot"
	"github.com/matzehuels/frameloom/pkg/transform"
)

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine error codes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeNodeNotFound, errors.ErrCodeFrameNotFound, errors.ErrCodeSnapshotNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidOperation, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidBreakpoint, errors.ErrCodePrimaryBreakpoint,
		errors.ErrCodeInvalidDocument:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

// =============================================================================
// Health and Document
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, err := document.MarshalDocument(s.doc)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// =============================================================================
// Breakpoints
// =============================================================================

type breakpointsResponse struct {
	Breakpoints []breakpoint.Breakpoint `json:"breakpoints"`
	PrimaryID   string                  `json:"primary_breakpoint"`
}

func (s *Server) handleGetBreakpoints(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := breakpointsResponse{
		Breakpoints: s.doc.Breakpoints.Ordered(),
		PrimaryID:   s.doc.Breakpoints.PrimaryID(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddBreakpoint(w http.ResponseWriter, r *http.Request) {
	var bp breakpoint.Breakpoint
	if !decodeBody(w, r, &bp) {
		return
	}
	s.mu.Lock()
	err := s.doc.Breakpoints.Add(bp)
	if err == nil {
		s.surface.Repaint()
		s.tracker.OnTreeMutation()
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bp)
}

type removeBreakpointResponse struct {
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleRemoveBreakpoint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	warnings, err := s.doc.RemoveBreakpoint(id)
	if err == nil {
		s.surface.Repaint()
		s.tracker.OnTreeMutation()
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := removeBreakpointResponse{}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Property Resolution
// =============================================================================

type resolvedResponse struct {
	NodeID       string         `json:"node_id"`
	BreakpointID string         `json:"breakpoint_id"`
	Style        map[string]any `json:"style"`
	Behavior     map[string]any `json:"behavior"`
	Warnings     []string       `json:"warnings,omitempty"`
}

func (s *Server) handleResolveNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "id")
	breakpointID := r.URL.Query().Get("breakpoint")

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.doc.FindNode(nodeID)
	if n == nil {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", nodeID))
		return
	}
	if breakpointID == "" {
		breakpointID = s.doc.Breakpoints.PrimaryID()
	}

	resolved, warnings := property.SplitResolved(n.Props, breakpointID, s.doc.Breakpoints)
	resp := resolvedResponse{
		NodeID:       nodeID,
		BreakpointID: breakpointID,
		Style:        resolved.Style,
		Behavior:     resolved.Behavior,
	}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNodeInstances(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "id")
	s.mu.Lock()
	instances, err := s.locator.FindAllInstances(nodeID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instances)
}

type nodeTransformRequest struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"z_index,omitempty"`
}

func (s *Server) handleNodeTransform(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "id")
	var req nodeTransformRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.doc.FindNode(nodeID)
	if n == nil {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", nodeID))
		return
	}
	err := n.UpdateCanvasTransform(component.TransformPatch{
		X:        req.X,
		Y:        req.Y,
		Scale:    req.Scale,
		Rotation: req.Rotation,
		ZIndex:   req.ZIndex,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.surface.Repaint()
	s.tracker.OnTreeMutation()
	writeJSON(w, http.StatusOK, n.Placement)
}

// =============================================================================
// Canvas Transform
// =============================================================================

func (s *Server) handleGetTransform(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.engine.State()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

type panRequest struct {
	DeltaX float64 `json:"delta_x"`
	DeltaY float64 `json:"delta_y"`
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	var req panRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	s.engine.Pan(req.DeltaX, req.DeltaY)
	state := s.engine.State()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

type zoomRequest struct {
	// Factor multiplies the current zoom; ignored when Step is set.
	Factor float64 `json:"factor,omitempty"`
	// Step is "in" or "out" for a fixed discrete increment.
	Step    string  `json:"step,omitempty"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	switch req.Step {
	case "in":
		s.engine.ZoomStep(transform.ZoomIn, req.CenterX, req.CenterY)
	case "out":
		s.engine.ZoomStep(transform.ZoomOut, req.CenterX, req.CenterY)
	case "":
		if req.Factor <= 0 {
			s.mu.Unlock()
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "zoom factor must be positive"))
			return
		}
		s.engine.ZoomAroundPoint(req.CenterX, req.CenterY, req.Factor)
	default:
		s.mu.Unlock()
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "zoom step must be \"in\" or \"out\""))
		return
	}
	state := s.engine.State()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleResetTransform(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.engine.Reset()
	state := s.engine.State()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

// =============================================================================
// Selection
// =============================================================================

type selectionResponse struct {
	State     selection.State              `json:"state"`
	NodeID    string                       `json:"node_id,omitempty"`
	Instances []selection.SelectedInstance `json:"instances,omitempty"`
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := selectionResponse{
		State:     s.tracker.State(),
		NodeID:    s.tracker.SelectedNodeID(),
		Instances: s.tracker.Instances(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

type selectRequest struct {
	NodeID  string `json:"node_id"`
	FrameID string `json:"frame_id"`
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	err := s.tracker.Select(req.NodeID, req.FrameID)
	resp := selectionResponse{
		State:     s.tracker.State(),
		NodeID:    s.tracker.SelectedNodeID(),
		Instances: s.tracker.Instances(),
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSelection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tracker.Deselect()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, selectionResponse{State: selection.StateIdle})
}

// =============================================================================
// Snapshots
// =============================================================================

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list snapshots"))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	err := snapshot.Save(r.Context(), s.store, name, s.doc)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := snapshot.Load(r.Context(), s.store, name)
	if err != nil {
		writeError(w, err)
		return
	}

	// Swap the live document and rebuild everything derived from it.
	s.mu.Lock()
	s.doc = doc
	s.surface.Rebind(doc)
	s.locator.Rebind(doc)
	s.tracker.Deselect()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete snapshot %q", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
