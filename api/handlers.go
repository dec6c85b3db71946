package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lookbusy1344/gekko-interpreter/gekko"
)

// handleCreateSession handles POST /api/v1/session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	session, err := s.sessions.CreateSession(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create session: %v", err))
		return
	}

	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	})
}

// handleListSessions handles GET /api/v1/session.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": ids,
		"count":    len(ids),
	})
}

// handleDestroySession handles DELETE /api/v1/session/{id}.
func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Session destroyed"})
}

// snapshotState builds a StateResponse from the session's current core,
// must be called with session.mu held.
func snapshotState(session *Session) StateResponse {
	regs := &session.Debugger.CPU.Regs
	resp := StateResponse{
		SessionID: session.ID,
		PC:        regs.PC,
		LR:        regs.LR,
		CTR:       regs.CTR,
		XER:       regs.XER,
		CR:        regs.CR,
		Counter:   session.Debugger.CPU.Counter,
		Running:   session.Debugger.Running,
	}
	for i := 0; i < 32; i++ {
		resp.GPR[i] = regs.GetGPR(uint8(i))
	}
	return resp
}

// handleGetState handles GET /api/v1/session/{id} and .../state.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session.mu.Lock()
	resp := snapshotState(session)
	session.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// handleStep handles POST /api/v1/session/{id}/step: a single core cycle.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session.mu.Lock()
	ev, stepErr := session.Debugger.CPU.Step()
	resp := snapshotState(session)
	session.mu.Unlock()

	if stepErr != nil {
		resp.Error = stepErr.Error()
		s.broadcaster.BroadcastExecutionEvent(sessionID, "error", map[string]interface{}{"message": stepErr.Error()})
	} else if ev == gekko.EventBreak {
		resp.Event = "break"
		s.broadcaster.BroadcastExecutionEvent(sessionID, "break", map[string]interface{}{"pc": resp.PC})
	}
	s.broadcaster.BroadcastState(sessionID, map[string]interface{}{"pc": resp.PC, "counter": resp.Counter})

	writeJSON(w, http.StatusOK, resp)
}

// handleRun handles POST /api/v1/session/{id}/run: steps until a break
// event, an error, or the request's cycle cap, whichever comes first.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req RunRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	maxCycles := req.MaxCycles
	if maxCycles == 0 {
		maxCycles = 1_000_000
	}

	session.mu.Lock()
	ev, runErr := session.Debugger.CPU.RunUntilEventLimited(maxCycles)
	resp := snapshotState(session)
	session.mu.Unlock()

	if runErr != nil {
		resp.Error = runErr.Error()
		s.broadcaster.BroadcastExecutionEvent(sessionID, "error", map[string]interface{}{"message": runErr.Error()})
	} else if ev == gekko.EventBreak {
		resp.Event = "break"
		s.broadcaster.BroadcastExecutionEvent(sessionID, "break", map[string]interface{}{"pc": resp.PC})
	}
	s.broadcaster.BroadcastState(sessionID, map[string]interface{}{"pc": resp.PC, "counter": resp.Counter})

	writeJSON(w, http.StatusOK, resp)
}

// handleReset handles POST /api/v1/session/{id}/reset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session.mu.Lock()
	session.Debugger.CPU.Reboot()
	resp := snapshotState(session)
	session.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// handleGetMemory handles GET /api/v1/session/{id}/memory?address=&length=.
func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	addr, addrErr := strconv.ParseUint(r.URL.Query().Get("address"), 0, 32)
	if addrErr != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing address")
		return
	}
	length, lenErr := strconv.ParseUint(r.URL.Query().Get("length"), 0, 32)
	if lenErr != nil || length == 0 {
		length = 64
	}

	session.mu.Lock()
	data, readErr := session.Debugger.CPU.Mem.GetBytes(uint32(addr), uint32(length))
	session.mu.Unlock()

	if readErr != nil {
		writeError(w, http.StatusBadRequest, readErr.Error())
		return
	}

	writeJSON(w, http.StatusOK, MemoryResponse{Address: uint32(addr), Data: data, Length: uint32(length)})
}

// handleBreakpoint handles POST/DELETE /api/v1/session/{id}/breakpoint.
func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req BreakpointRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		bp := session.Debugger.Breakpoints.AddBreakpoint(req.Address, false, "")
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": bp.ID, "address": bp.Address})
	case http.MethodDelete:
		bp := session.Debugger.Breakpoints.GetBreakpoint(req.Address)
		if bp == nil {
			writeError(w, http.StatusNotFound, "No breakpoint at that address")
			return
		}
		_ = session.Debugger.Breakpoints.DeleteBreakpoint(bp.ID)
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListBreakpoints handles GET /api/v1/session/{id}/breakpoints.
func (s *Server) handleListBreakpoints(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session.mu.Lock()
	bps := session.Debugger.Breakpoints.GetAllBreakpoints()
	session.mu.Unlock()

	addrs := make([]uint32, len(bps))
	for i, bp := range bps {
		addrs[i] = bp.Address
	}
	writeJSON(w, http.StatusOK, BreakpointsResponse{Breakpoints: addrs})
}
