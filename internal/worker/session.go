// Package worker runs solve enumerations off the caller's goroutine. A
// Session owns one search at a time and speaks a strict one-shot
// request/response protocol: Init discards any prior search and starts a
// fresh enumeration, Next pulls one solution. There is no pipelining and no
// suspend/resume; cancellation is Close, which tears the session down.
package worker

import (
	"github.com/google/uuid"

	"github.com/piwi3910/GridFit/internal/engine"
	"github.com/piwi3910/GridFit/internal/model"
)

// ResponseType discriminates session responses.
type ResponseType int

const (
	RespReady ResponseType = iota
	RespNext
	RespError
)

// Response is one protocol reply. For RespNext, Done reports exhaustion and
// Value carries the solution when Done is false. For RespError, Reason
// explains the protocol violation.
type Response struct {
	Type   ResponseType
	Done   bool
	Value  model.Solution
	Reason string
}

type requestKind int

const (
	reqInit requestKind = iota
	reqNext
)

type request struct {
	kind    requestKind
	problem model.Problem
}

// Session is a solve worker. All exported methods are safe to call from a
// single controlling goroutine; the search itself runs on the session's own
// goroutine, so Next blocks the session, never the UI thread driving it
// through a channel select.
type Session struct {
	ID string

	requests  chan request
	responses chan Response
	quit      chan struct{}
}

// NewSession starts the worker goroutine and consumes its startup Ready.
func NewSession() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		requests:  make(chan request),
		responses: make(chan Response),
		quit:      make(chan struct{}),
	}
	go s.run()
	<-s.responses // startup Ready
	return s
}

func (s *Session) run() {
	s.responses <- Response{Type: RespReady}

	var it *engine.Iterator
	for {
		var req request
		select {
		case <-s.quit:
			return
		case req = <-s.requests:
		}

		var resp Response
		switch req.kind {
		case reqInit:
			it = engine.Solve(req.problem)
			resp = Response{Type: RespReady}
		case reqNext:
			if it == nil {
				resp = Response{Type: RespError, Reason: "next requested before init"}
				break
			}
			solution, ok := it.Next()
			resp = Response{Type: RespNext, Done: !ok, Value: solution}
		}

		select {
		case <-s.quit:
			return
		case s.responses <- resp:
		}
	}
}

// roundTrip sends one request and waits for its reply. A closed session
// reports exhaustion-style errors rather than blocking forever.
func (s *Session) roundTrip(req request) (Response, bool) {
	select {
	case <-s.quit:
		return Response{}, false
	case s.requests <- req:
	}
	select {
	case <-s.quit:
		return Response{}, false
	case resp := <-s.responses:
		return resp, true
	}
}

// Init discards any prior search state and starts a fresh enumeration for
// the problem. It returns false if the session has been closed.
func (s *Session) Init(p model.Problem) bool {
	resp, ok := s.roundTrip(request{kind: reqInit, problem: p})
	return ok && resp.Type == RespReady
}

// Next pulls the next solution. ok is false when the enumeration is
// exhausted or the session is closed; a Next before any Init surfaces as
// the RespError response.
func (s *Session) Next() (Response, bool) {
	resp, alive := s.roundTrip(request{kind: reqNext})
	if !alive {
		return Response{Type: RespNext, Done: true}, false
	}
	if resp.Type == RespError {
		return resp, false
	}
	return resp, !resp.Done
}

// Close terminates the session. Any search in progress is abandoned; a new
// session must be created to search again.
func (s *Session) Close() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
}
