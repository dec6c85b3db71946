package api

import "time"

// SessionCreateRequest configures a new core at session creation. RAMSize
// and BaseAddress default to gekko's nominal image when zero.
type SessionCreateRequest struct {
	RAMSize     uint32 `json:"ramSize,omitempty"`
	BaseAddress uint32 `json:"baseAddress,omitempty"`
}

// SessionCreateResponse is returned after a session is created.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// StateResponse is a full snapshot of one core: PC/LR/CTR/XER, the CR
// nibbles, all 32 GPRs and the instruction counter.
type StateResponse struct {
	SessionID string     `json:"sessionId"`
	PC        uint32     `json:"pc"`
	LR        uint32     `json:"lr"`
	CTR       uint32     `json:"ctr"`
	XER       uint32     `json:"xer"`
	CR        [8]uint8   `json:"cr"`
	GPR       [32]uint32 `json:"gpr"`
	Counter   uint64     `json:"counter"`
	Running   bool       `json:"running"`
	Event     string     `json:"event,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// RunRequest bounds a /run call so a session can never spin forever.
type RunRequest struct {
	MaxCycles uint64 `json:"maxCycles,omitempty"`
}

// MemoryResponse is a byte range read from a session's memory image.
type MemoryResponse struct {
	Address uint32 `json:"address"`
	Data    []byte `json:"data"`
	Length  uint32 `json:"length"`
}

// BreakpointRequest names an address to add or remove a breakpoint at.
type BreakpointRequest struct {
	Address uint32 `json:"address"`
}

// BreakpointsResponse lists the addresses a session will stop at.
type BreakpointsResponse struct {
	Breakpoints []uint32 `json:"breakpoints"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse is a generic acknowledgement body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
