package domain

import "sync"

// Session scopes all mutable resolution state to one explicit build session
// passed by reference to every component. Nothing is ambient or static, so
// multiple independent builds can run in the same process, and nothing is
// persisted: the whole session is rebuilt from scratch on restart.
type Session struct {
	Units    *UnitStore
	Graph    *Graph
	Decls    *DeclRegistry
	Validity *Validity

	mu           sync.Mutex
	preambleDone bool
}

// NewSession creates a fresh build session.
func NewSession() *Session {
	return &Session{
		Units:    NewUnitStore(),
		Graph:    NewGraph(),
		Decls:    NewDeclRegistry(),
		Validity: NewValidity(),
	}
}

// BeginPreamble flips the one-time preamble latch. It returns true exactly
// once per session; the preamble unit is resolved only on that call.
func (s *Session) BeginPreamble() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.preambleDone {
		return false
	}
	s.preambleDone = true
	return true
}
