package session

// Option customises a session
type Option func(s *Session)

// WithHistoryLimit keeps at most limit history entries; zero keeps all
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		s.historyLimit = limit
	}
}
