package app

import "errors"

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	var ire interface {
		IsInvalidRequest() bool
	}
	if errors.As(err, &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// TooManyRequestsError is returned when rate limit is exceeded
type TooManyRequestsError string

// Error implements error interface
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exceeded rate limit
func IsTooManyRequestsError(err error) bool {
	var tmr interface {
		IsTooManyRequests() bool
	}
	if errors.As(err, &tmr) {
		return tmr.IsTooManyRequests()
	}

	return false
}

// StatsNotReadyError is returned when github didn't compute repository statistics in time.
type StatsNotReadyError string

// Error implements error interface
func (e StatsNotReadyError) Error() string {
	return string(e)
}

// IsStatsNotReady tells that this error is 'stats not ready'.
// Returns always true.
func (StatsNotReadyError) IsStatsNotReady() bool {
	return true
}

// IsStatsNotReadyError checks if given error is caused by statistics not computed yet
func IsStatsNotReadyError(err error) bool {
	var snr interface {
		IsStatsNotReady() bool
	}
	if errors.As(err, &snr) {
		return snr.IsStatsNotReady()
	}

	return false
}
