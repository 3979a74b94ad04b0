package deserialisers

import (
	"context"
	"errors"
	"fmt"

	"race-importer/core/utils"
	"race-importer/feature/importer/models"

	"gorm.io/gorm"
)

// Deserialiser validates and transforms one raw record into normalized
// instances grouped by target model kind. A record may expand into instances
// of more than one kind, or into none at all (a valid no-op).
//
// A failure is reported as a non-nil error whose message is suitable for the
// batch error list; deserialisers never panic past this boundary.
type Deserialiser interface {
	Deserialise(ctx context.Context, record models.RawRecord) (models.Instances, error)
}

// resolver performs referential lookups against already-persisted data.
// It is embedded by the concrete deserialisers.
type resolver struct {
	db *gorm.DB
}

// requireKeys verifies the presence of each required foreign key field.
func requireKeys(fk map[string]any, keys ...string) error {
	for _, key := range keys {
		if _, ok := fk[key]; !ok {
			return fmt.Errorf("foreign_keys is missing required field %q", key)
		}
	}
	return nil
}

// notExist reports a referential lookup failure for the named model.
func notExist(model string) error {
	return fmt.Errorf("%s matching query does not exist.", model)
}

func (r resolver) round(ctx context.Context, fk map[string]any) (*models.Round, error) {
	if err := requireKeys(fk, "year", "round"); err != nil {
		return nil, err
	}

	var round models.Round
	err := r.db.WithContext(ctx).
		Joins("JOIN seasons ON seasons.id = rounds.season_id").
		Where("seasons.year = ? AND rounds.number = ?", utils.ToInt(fk["year"]), utils.ToInt(fk["round"])).
		First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("Round")
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r resolver) driver(ctx context.Context, reference string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&driver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("Driver")
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r resolver) team(ctx context.Context, reference string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("Team")
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r resolver) session(ctx context.Context, roundID uint, sessionType string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("round_id = ? AND type = ?", roundID, sessionType).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("Session")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// sessionEntry resolves the session entry identified by
// {year, round, session, car_number}, walking round -> session -> round entry.
func (r resolver) sessionEntry(ctx context.Context, fk map[string]any) (*models.SessionEntry, error) {
	if err := requireKeys(fk, "year", "round", "session", "car_number"); err != nil {
		return nil, err
	}

	round, err := r.round(ctx, fk)
	if err != nil {
		return nil, err
	}

	session, err := r.session(ctx, round.ID, utils.ToString(fk["session"]))
	if err != nil {
		return nil, err
	}

	var roundEntry models.RoundEntry
	err = r.db.WithContext(ctx).
		Where("round_id = ? AND car_number = ?", round.ID, utils.ToInt(fk["car_number"])).
		First(&roundEntry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("RoundEntry")
	}
	if err != nil {
		return nil, err
	}

	var entry models.SessionEntry
	err = r.db.WithContext(ctx).
		Where("session_id = ? AND round_entry_id = ?", session.ID, roundEntry.ID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notExist("SessionEntry")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// durationMillis extracts a millisecond duration from either a bare number or
// the tagged form {"_type": "timedelta", "milliseconds": N}.
func durationMillis(val any) (int64, error) {
	switch v := val.(type) {
	case map[string]any:
		ms, ok := v["milliseconds"]
		if !ok {
			return 0, fmt.Errorf("duration object is missing \"milliseconds\"")
		}
		return utils.ToInt64(ms), nil
	case nil:
		return 0, fmt.Errorf("duration value is missing")
	default:
		return utils.ToInt64(val), nil
	}
}
