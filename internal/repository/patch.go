package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// mergeAndStamp copies the provided column changes and refreshes updated_at.
// Every partial update of a stamped table goes through here.
func mergeAndStamp(changes map[string]any, now time.Time) map[string]any {
	merged := make(map[string]any, len(changes)+1)
	for column, value := range changes {
		merged[column] = value
	}
	merged["updated_at"] = now
	return merged
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation recognizes unique violations from both backends. The
// pure Go SQLite driver is not covered by GORM's translator, so its message
// is matched as well.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
