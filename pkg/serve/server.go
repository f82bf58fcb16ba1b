// Package serve implements the NDJSON protocol spoken with editor plugins
// over stdin and stdout.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server reads requests line by line and writes one response per request.
type Server struct {
	session *Session
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(session *Session, in io.Reader, out io.Writer) *Server {
	return &Server{
		session: session,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run sends the ready message and serves until input ends, a close request
// arrives or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// A request decoded just before EOF may still be queued.
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError(TypeDecode, err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case TypeRender:
		s.handleRender(req.Payload)
	case TypeIndex:
		s.handleIndex(req.Payload)
	case TypeClose:
		return true
	default:
		s.sendError(TypeError, "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send(TypeReady, ReadyData{Version: Version})
}

func (s *Server) handleRender(payload json.RawMessage) {
	var p RenderPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeRender, err.Error())
		return
	}

	result, err := s.session.Render(p)
	if err != nil {
		s.sendError(TypeRender, err.Error())
		return
	}
	s.send(TypeRender, result)
}

func (s *Server) handleIndex(payload json.RawMessage) {
	var p IndexPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeIndex, err.Error())
		return
	}
	s.send(TypeIndex, s.session.Index(p))
}

func (s *Server) send(typ string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(typ, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    typ,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
