package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CardInput is a proposed daily card before validation. Scores must be
// index-aligned with the scheme's category list.
type CardInput struct {
	UserID uint
	Date   time.Time
	Scores []float64
	Note   string
}

// ScoreOutOfRangeError reports a category value outside [0, max].
type ScoreOutOfRangeError struct {
	Category string
	Value    float64
	Max      float64
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %q = %v outside [0, %v]", e.Category, e.Value, e.Max)
}

// DateOutOfWindowError reports a card dated outside the observance period.
type DateOutOfWindowError struct {
	Date   time.Time
	Window Window
}

func (e *DateOutOfWindowError) Error() string {
	return fmt.Sprintf("date %s outside window [%s, %s]",
		e.Date.Format("2006-01-02"),
		e.Window.Start.Format("2006-01-02"),
		e.Window.End.Format("2006-01-02"))
}

// FutureDateError reports a self-service submission dated after today.
// Supervisors and admins editing on a member's behalf are exempt.
type FutureDateError struct {
	Date  time.Time
	Today time.Time
}

func (e *FutureDateError) Error() string {
	return fmt.Sprintf("date %s is after today %s",
		e.Date.Format("2006-01-02"), e.Today.Format("2006-01-02"))
}

// ErrDuplicateCard is surfaced by the storage layer when a create-only path
// hits the (user, date) unique constraint. Defined here so callers share one
// sentinel across features.
var ErrDuplicateCard = errors.New("a card already exists for this user and date")

// ValidateCard checks a proposed card against the scheme and window and
// returns the normalized Scorecard. privileged marks supervisor/admin writes,
// which skip the future-date rule so backfilling corrections stays possible.
// Pure: today is passed in, never read from the clock.
func ValidateCard(in CardInput, scheme Scheme, w Window, today time.Time, privileged bool) (Scorecard, error) {
	if len(in.Scores) != scheme.NumCategories() {
		return Scorecard{}, fmt.Errorf("expected %d category scores, got %d", scheme.NumCategories(), len(in.Scores))
	}
	for i, v := range in.Scores {
		if v != v || v < 0 || v > scheme.CategoryMax {
			return Scorecard{}, &ScoreOutOfRangeError{
				Category: scheme.Categories[i].Key,
				Value:    v,
				Max:      scheme.CategoryMax,
			}
		}
	}

	d := DateOnly(in.Date)
	if !w.Contains(d) {
		return Scorecard{}, &DateOutOfWindowError{Date: d, Window: w}
	}
	if !privileged && d.After(DateOnly(today)) {
		return Scorecard{}, &FutureDateError{Date: d, Today: DateOnly(today)}
	}

	scores := make([]float64, len(in.Scores))
	copy(scores, in.Scores)
	return Scorecard{
		UserID: in.UserID,
		Date:   d,
		Scores: scores,
		Note:   strings.TrimSpace(in.Note),
	}, nil
}

// ParseScore coerces a loosely typed cell value (spreadsheet import, query
// string) into a score. An empty value counts as zero.
func ParseScore(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported score type %T", raw)
	}
}
