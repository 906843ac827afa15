// Package businessflow contains the core business logic and use cases for workforce dimensioning and scenario negotiation
package businessflow

import (
	"errors"
	"fmt"
)

// The four error kinds of the engine. Every specific failure wraps exactly one
// of these, so callers can branch on kind with errors.Is. All four are local,
// synchronous and non-retryable: the caller must fix the input.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrConfiguration     = errors.New("invalid configuration")
	ErrBaselineImmutable = errors.New("baseline scenario is immutable")
	ErrNotFound          = errors.New("not found")
)

// Dimensioning errors
var (
	ErrUserCountTooLow         = fmt.Errorf("%w: user count must be at least 1", ErrInvalidInput)
	ErrIncidentRateNegative    = fmt.Errorf("%w: incidents per user per month cannot be negative", ErrInvalidInput)
	ErrHandleTimeNotPositive   = fmt.Errorf("%w: average handle minutes must be positive", ErrInvalidInput)
	ErrOccupancyOutOfRange     = fmt.Errorf("%w: occupancy rate must be between 1 and 100", ErrInvalidInput)
	ErrTierShareOutOfRange     = fmt.Errorf("%w: tier-1 share must be between 0 and 100", ErrInvalidInput)
	ErrTierCapacityNotPositive = fmt.Errorf("%w: per-agent tier capacity must be positive", ErrInvalidInput)
)

// Schedule errors
var (
	ErrUnknownCoveragePolicy = fmt.Errorf("%w: unknown coverage policy", ErrConfiguration)
	ErrNoAgentsToSchedule    = fmt.Errorf("%w: staffing result has no agents", ErrInvalidInput)
)

// Cost engine errors
var (
	ErrHeadcountTooLow       = fmt.Errorf("%w: position headcount must be at least 1", ErrInvalidInput)
	ErrUnknownWeeklyHours    = fmt.Errorf("%w: weekly hours must be 48 or 36", ErrInvalidInput)
	ErrPositionRateMissing   = fmt.Errorf("%w: no salary rate for position", ErrInvalidInput)
	ErrNegativeRate          = fmt.Errorf("%w: salary rate cannot be negative", ErrInvalidInput)
	ErrNegativeTaxRate       = fmt.Errorf("%w: tax rate cannot be negative", ErrInvalidInput)
	ErrNegativeCostAmount    = fmt.Errorf("%w: cost amount cannot be negative", ErrInvalidInput)
	ErrUnknownCostBehavior   = fmt.Errorf("%w: unknown cost behavior", ErrConfiguration)
	ErrUnknownRecurrence     = fmt.Errorf("%w: unknown cost recurrence", ErrConfiguration)
	ErrUnknownMarginPolicy   = fmt.Errorf("%w: unknown margin policy kind", ErrConfiguration)
	ErrZeroInvestment        = fmt.Errorf("%w: investment must be positive", ErrInvalidInput)
)

// Scenario and version errors
var (
	ErrScenarioNotFound          = fmt.Errorf("%w: scenario", ErrNotFound)
	ErrVersionNotFound           = fmt.Errorf("%w: version", ErrNotFound)
	ErrNoVersionsSaved           = fmt.Errorf("%w: scenario has no saved versions", ErrNotFound)
	ErrAdjustmentIndexOutOfRange = fmt.Errorf("%w: adjustment index out of range", ErrInvalidInput)
	ErrUnknownAdjustmentCategory = fmt.Errorf("%w: unknown adjustment category", ErrInvalidInput)
	ErrScenarioNameRequired      = fmt.Errorf("%w: scenario name is required", ErrInvalidInput)
	ErrSecondBaseline            = fmt.Errorf("%w: a baseline scenario already exists", ErrConfiguration)
	ErrComparisonNeedsScenarios  = fmt.Errorf("%w: comparison requires at least one scenario", ErrInvalidInput)
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsBaselineImmutable(err error) bool {
	return errors.Is(err, ErrBaselineImmutable)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsScenarioNotFound(err error) bool {
	return errors.Is(err, ErrScenarioNotFound)
}

func IsVersionNotFound(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

func IsNoVersionsSaved(err error) bool {
	return errors.Is(err, ErrNoVersionsSaved)
}

func IsSecondBaseline(err error) bool {
	return errors.Is(err, ErrSecondBaseline)
}

func IsUnknownCoveragePolicy(err error) bool {
	return errors.Is(err, ErrUnknownCoveragePolicy)
}
