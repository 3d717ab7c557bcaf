package models

// GameType identifies the table game being tracked
type GameType string

const (
	GameTypeRoulette GameType = "roulette"
	GameTypeBaccarat GameType = "baccarat"
)

// Series selects one of the two stake parameter sets
type Series string

const (
	SeriesA Series = "A"
	SeriesB Series = "B"
)

// Mode decides whether the next pick follows or fades the last true outcome
type Mode string

const (
	ModeSame Mode = "SAME"
	ModeOpp  Mode = "OPP"
)

// Outcome is a raw table result symbol. Black and banker share the "B" symbol;
// the session's game type disambiguates them.
type Outcome string

const (
	OutcomeRed    Outcome = "R"
	OutcomeBlack  Outcome = "B"
	OutcomeGreen  Outcome = "G"
	OutcomePlayer Outcome = "P"
	OutcomeBanker Outcome = "B"
	OutcomeTie    Outcome = "T"
)

// SessionSettings are the user-chosen options that survive a new evening
type SessionSettings struct {
	GameType   GameType `yaml:"game_type" json:"gameType"`
	Series     Series   `yaml:"series" json:"series"`
	StartMode  Mode     `yaml:"start_mode" json:"startMode"`
	AutoSeries bool     `yaml:"auto_series" json:"autoSeries"`
	CarryMode  bool     `yaml:"carry_mode" json:"carryMode"`
}

// SettingsUpdate carries a partial change to SessionSettings. Nil fields are left alone.
type SettingsUpdate struct {
	GameType   *GameType
	Series     *Series
	StartMode  *Mode
	AutoSeries *bool
	CarryMode  *bool
}

// Apply returns settings with the non-nil fields of the update applied
func (u SettingsUpdate) Apply(settings SessionSettings) SessionSettings {
	if u.GameType != nil {
		settings.GameType = *u.GameType
	}
	if u.Series != nil {
		settings.Series = *u.Series
	}
	if u.StartMode != nil {
		settings.StartMode = *u.StartMode
	}
	if u.AutoSeries != nil {
		settings.AutoSeries = *u.AutoSeries
	}
	if u.CarryMode != nil {
		settings.CarryMode = *u.CarryMode
	}
	return settings
}

// IsEmpty reports whether the update changes nothing
func (u SettingsUpdate) IsEmpty() bool {
	return u.GameType == nil && u.Series == nil && u.StartMode == nil && u.AutoSeries == nil && u.CarryMode == nil
}

// Session is the single mutable root of a tracking session
type Session struct {
	ID          string   `json:"sessionId"`
	GameType    GameType `json:"gameType"`
	Series      Series   `json:"series"`
	StartMode   Mode     `json:"startMode"`
	AutoSeries  bool     `json:"autoSeries"`
	CarryMode   bool     `json:"carryMode"`
	PendingOneB bool     `json:"pendingOneB"`

	BankrollOn      bool     `json:"bankrollOn"`
	BankrollStart   *float64 `json:"bankrollStart"`
	BankrollCurrent *float64 `json:"bankrollCurrent"`

	Game           Game    `json:"game"`
	PendingOutcome Outcome `json:"pendingOutcome,omitempty"`

	Log []LogEntry `json:"log,omitempty"`

	// History holds undo snapshots, newest last. Never persisted.
	History []Session `json:"-"`
}

// Settings returns the session's user-chosen options
func (s *Session) Settings() SessionSettings {
	return SessionSettings{
		GameType:   s.GameType,
		Series:     s.Series,
		StartMode:  s.StartMode,
		AutoSeries: s.AutoSeries,
		CarryMode:  s.CarryMode,
	}
}

// ApplySettings overwrites the session's user-chosen options
func (s *Session) ApplySettings(settings SessionSettings) {
	s.GameType = settings.GameType
	s.Series = settings.Series
	s.StartMode = settings.StartMode
	s.AutoSeries = settings.AutoSeries
	s.CarryMode = settings.CarryMode
}

// Clone returns a copy that shares no mutable state with s. The log backing
// array is shared with a capped slice, so appends on either side reallocate.
// History is not carried over.
func (s *Session) Clone() Session {
	c := *s
	c.BankrollStart = cloneFloat(s.BankrollStart)
	c.BankrollCurrent = cloneFloat(s.BankrollCurrent)
	c.Log = s.Log[:len(s.Log):len(s.Log)]
	c.History = nil
	return c
}

// LastIdx returns the idx of the newest log entry, or 0 for an empty log
func (s *Session) LastIdx() int {
	if len(s.Log) == 0 {
		return 0
	}
	return s.Log[len(s.Log)-1].Idx
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
