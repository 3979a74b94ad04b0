package models

import "time"

// Model kind names. These are the keys of PersistenceOutcome.Models and the
// Model field of ModelImport entries produced by the deserialisers.
const (
	ModelRoundEntry   = "RoundEntry"
	ModelSessionEntry = "SessionEntry"
	ModelLap          = "Lap"
	ModelPitStop      = "PitStop"
)

// Season is a championship year. Reference data; not an import target.
type Season struct {
	ID   uint `gorm:"primaryKey"`
	Year int  `gorm:"uniqueIndex"`
}

// Round is one race weekend of a season.
type Round struct {
	ID       uint `gorm:"primaryKey"`
	SeasonID uint `gorm:"uniqueIndex:idx_round_season_number"`
	Number   int  `gorm:"uniqueIndex:idx_round_season_number"`
	Name     string
}

// Session is a single timed session of a round (practice, qualifying, race).
type Session struct {
	ID      uint   `gorm:"primaryKey"`
	RoundID uint   `gorm:"uniqueIndex:idx_session_round_type"`
	Type    string `gorm:"size:4;uniqueIndex:idx_session_round_type"`
	Number  int
}

// Driver is reference data resolved by its public reference string.
type Driver struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"size:64;uniqueIndex"`
	Forename  string
	Surname   string
}

// Team is reference data resolved by its public reference string.
type Team struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"size:64;uniqueIndex"`
	Name      string
}

// RoundEntry is a car entered into a round by a team/driver pairing.
type RoundEntry struct {
	ID        uint `gorm:"primaryKey"`
	RoundID   uint `gorm:"uniqueIndex:idx_round_entry_key"`
	DriverID  uint `gorm:"uniqueIndex:idx_round_entry_key"`
	TeamID    uint `gorm:"uniqueIndex:idx_round_entry_key"`
	CarNumber int
}

// ModelName identifies the persisted kind for reconciliation.
func (RoundEntry) ModelName() string { return ModelRoundEntry }

// BusinessKey returns the natural key used to detect an existing row.
func (e *RoundEntry) BusinessKey() map[string]any {
	return map[string]any{"round_id": e.RoundID, "driver_id": e.DriverID, "team_id": e.TeamID}
}

// UpdateColumns returns the mutable fields applied when the row exists.
func (e *RoundEntry) UpdateColumns() map[string]any {
	return map[string]any{"car_number": e.CarNumber}
}

// PrimaryID returns the synthetic key assigned on create.
func (e *RoundEntry) PrimaryID() uint { return e.ID }

// SessionEntry is a round entry's participation in one session.
type SessionEntry struct {
	ID           uint `gorm:"primaryKey"`
	SessionID    uint `gorm:"uniqueIndex:idx_session_entry_key"`
	RoundEntryID uint `gorm:"uniqueIndex:idx_session_entry_key"`
	Position     int
	Status       string `gorm:"size:32"`
}

func (SessionEntry) ModelName() string { return ModelSessionEntry }

func (e *SessionEntry) BusinessKey() map[string]any {
	return map[string]any{"session_id": e.SessionID, "round_entry_id": e.RoundEntryID}
}

func (e *SessionEntry) UpdateColumns() map[string]any {
	return map[string]any{"position": e.Position, "status": e.Status}
}

func (e *SessionEntry) PrimaryID() uint { return e.ID }

// Lap is one timed lap of a session entry.
type Lap struct {
	ID             uint `gorm:"primaryKey"`
	SessionEntryID uint `gorm:"uniqueIndex:idx_lap_key"`
	Number         int  `gorm:"uniqueIndex:idx_lap_key"`
	Position       int
	// TimeMillis is the lap time in milliseconds.
	TimeMillis   int64
	AverageSpeed float64
}

func (Lap) ModelName() string { return ModelLap }

func (l *Lap) BusinessKey() map[string]any {
	return map[string]any{"session_entry_id": l.SessionEntryID, "number": l.Number}
}

func (l *Lap) UpdateColumns() map[string]any {
	return map[string]any{"position": l.Position, "time_millis": l.TimeMillis, "average_speed": l.AverageSpeed}
}

func (l *Lap) PrimaryID() uint { return l.ID }

// PitStop is a pit stop taken by a session entry. A pit stop that cannot be
// associated with a lap is rejected at deserialisation time.
type PitStop struct {
	ID             uint `gorm:"primaryKey"`
	SessionEntryID uint `gorm:"uniqueIndex:idx_pit_stop_key"`
	Number         int  `gorm:"uniqueIndex:idx_pit_stop_key"`
	LapID          uint
	// DurationMillis is the stationary time in milliseconds.
	DurationMillis int64
	LocalTimestamp string `gorm:"size:32"`
}

func (PitStop) ModelName() string { return ModelPitStop }

func (p *PitStop) BusinessKey() map[string]any {
	return map[string]any{"session_entry_id": p.SessionEntryID, "number": p.Number}
}

func (p *PitStop) UpdateColumns() map[string]any {
	return map[string]any{"lap_id": p.LapID, "duration_millis": p.DurationMillis, "local_timestamp": p.LocalTimestamp}
}

func (p *PitStop) PrimaryID() uint { return p.ID }

// ImportLog records one import call, successful or not.
type ImportLog struct {
	ID           string `gorm:"primaryKey;size:36"`
	DryRun       bool
	RecordCount  int
	ErrorCount   int
	CreatedCount int
	UpdatedCount int
	CreatedAt    time.Time
}

// AllTables lists every model for schema migration, parents first.
func AllTables() []any {
	return []any{
		&Season{}, &Round{}, &Session{}, &Driver{}, &Team{},
		&RoundEntry{}, &SessionEntry{}, &Lap{}, &PitStop{},
		&ImportLog{},
	}
}
