package api

import "time"

type ServerOpt func(*Server)

func WithAddr(addr string) ServerOpt {
	return func(s *Server) {
		s.addr = addr
	}
}

func WithTimeouts(read time.Duration, write time.Duration) ServerOpt {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// WithMCP serves h on POST /mcp.
func WithMCP(h MessageHandler) ServerOpt {
	return func(s *Server) {
		s.mcp = h
	}
}

// WithWebSocket toggles the /ws play endpoint. It is on by default.
func WithWebSocket(enabled bool) ServerOpt {
	return func(s *Server) {
		s.websocket = enabled
	}
}

// WithEventSubscriber forwards session events to websocket clients.
func WithEventSubscriber(sub Subscriber) ServerOpt {
	return func(s *Server) {
		s.events = sub
	}
}
