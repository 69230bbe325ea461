package models

import "time"

const (
	// TeamSize is the number of players on one side of a court.
	TeamSize = 2
	// CourtSize is the number of players a court seats when a game is on.
	CourtSize = 2 * TeamSize

	// DefaultMaxPlayers caps the roster when no configuration is stored.
	DefaultMaxPlayers = 20
	// DefaultNumCourts is the board size when no configuration is stored.
	DefaultNumCourts = 3
)

// Court holds the players seated on a single court, in seating order.
// Slots 0 and 1 form team 1, slots 2 and 3 form team 2. Between operations a
// court is either empty or seats exactly CourtSize players.
type Court []string

// Team1 returns a copy of the first team (slots 0 and 1).
func (c Court) Team1() []string {
	if len(c) < CourtSize {
		return nil
	}
	return []string{c[0], c[1]}
}

// Team2 returns a copy of the second team (slots 2 and 3).
func (c Court) Team2() []string {
	if len(c) < CourtSize {
		return nil
	}
	return []string{c[2], c[3]}
}

// IsFull reports whether a game can be played on this court.
func (c Court) IsFull() bool {
	return len(c) == CourtSize
}

// IsEmpty reports whether the court is open.
func (c Court) IsEmpty() bool {
	return len(c) == 0
}

// MatchRecord is one settled game. Records are immutable once appended.
type MatchRecord struct {
	Court    int       `json:"court"` // 0-based board index
	Winners  []string  `json:"winners"`
	Losers   []string  `json:"losers"`
	PlayedAt time.Time `json:"played_at"`
}

// Settings holds the session limits supplied by the configuration boundary.
type Settings struct {
	MaxPlayers int `json:"max_players"`
	NumCourts  int `json:"num_courts"`
}

// DefaultSettings returns the limits used before anyone has configured the session.
func DefaultSettings() Settings {
	return Settings{MaxPlayers: DefaultMaxPlayers, NumCourts: DefaultNumCourts}
}

// SessionState is the complete rotation state of one open-play session: who is
// registered, who is waiting, who is on which court, current win streaks and
// the log of finished games.
type SessionState struct {
	Players []string       `json:"players"`
	Queue   []string       `json:"queue"`
	Courts  []Court        `json:"courts"`
	Streaks map[string]int `json:"streaks"`
	History []MatchRecord  `json:"history"`
}

// NewSessionState returns an empty session with numCourts open courts.
func NewSessionState(numCourts int) *SessionState {
	if numCourts < 0 {
		numCourts = 0
	}
	courts := make([]Court, numCourts)
	for i := range courts {
		courts[i] = Court{}
	}
	return &SessionState{
		Players: []string{},
		Queue:   []string{},
		Courts:  courts,
		Streaks: map[string]int{},
		History: []MatchRecord{},
	}
}

// Clone returns a deep copy that can be mutated without touching the receiver.
// Match records are shared since they never change after being appended.
func (s *SessionState) Clone() *SessionState {
	out := &SessionState{
		Players: append([]string{}, s.Players...),
		Queue:   append([]string{}, s.Queue...),
		Courts:  make([]Court, len(s.Courts)),
		Streaks: make(map[string]int, len(s.Streaks)),
		History: append([]MatchRecord{}, s.History...),
	}
	for i, c := range s.Courts {
		out.Courts[i] = append(Court{}, c...)
	}
	for name, streak := range s.Streaks {
		out.Streaks[name] = streak
	}
	return out
}

// Normalize replaces nil collections with empty ones so that decoded or
// zero-valued states behave like NewSessionState output and marshal to
// [] and {} rather than null.
func (s *SessionState) Normalize() {
	if s.Players == nil {
		s.Players = []string{}
	}
	if s.Queue == nil {
		s.Queue = []string{}
	}
	if s.Courts == nil {
		s.Courts = []Court{}
	}
	for i, c := range s.Courts {
		if c == nil {
			s.Courts[i] = Court{}
		}
	}
	if s.Streaks == nil {
		s.Streaks = map[string]int{}
	}
	if s.History == nil {
		s.History = []MatchRecord{}
	}
}

// ResizeCourts grows or shrinks the board to numCourts. Growing appends open
// courts; shrinking keeps the lowest-numbered courts and drops the rest along
// with whoever was seated there.
func (s *SessionState) ResizeCourts(numCourts int) {
	if numCourts < 0 {
		numCourts = 0
	}
	for len(s.Courts) < numCourts {
		s.Courts = append(s.Courts, Court{})
	}
	if len(s.Courts) > numCourts {
		s.Courts = s.Courts[:numCourts]
	}
}

// OnCourt reports whether name is currently seated on any court.
func (s *SessionState) OnCourt(name string) bool {
	for _, c := range s.Courts {
		for _, p := range c {
			if p == name {
				return true
			}
		}
	}
	return false
}

// StateView is the snapshot pushed to API clients after every change. History
// is served separately so the live payload stays small.
type StateView struct {
	Players  []string       `json:"players"`
	Queue    []string       `json:"queue"`
	Courts   []Court        `json:"courts"`
	Streaks  map[string]int `json:"streaks"`
	Settings Settings       `json:"settings"`
}
