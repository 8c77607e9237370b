package integration

import (
	"errors"
	"fmt"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
)

// Domain errors surfaced to callers
var (
	ErrUnlinkedProduct    = shared.NewDomainError("UNLINKED_PRODUCT", "Product is not linked to the marketplace yet; push it first")
	ErrSyncAlreadyRunning = shared.NewDomainError("SYNC_ALREADY_RUNNING", "already running")
	ErrRemoteFailure      = shared.NewDomainError("REMOTE_FAILURE", "Marketplace request failed")
	ErrSyncLogNotFound    = shared.NewDomainError("NOT_FOUND", "Sync log not found")
	ErrInvalidLogStatus   = shared.NewDomainError("INVALID_SYNC_LOG_STATUS", "Status is not valid for this sync log type")

	// ErrSyncInProgress shares the concurrency-conflict code, so
	// errors.Is(err, shared.ErrConcurrencyConflict) holds for it.
	ErrSyncInProgress = shared.NewDomainError(shared.ErrConcurrencyConflict.Code,
		"Another sync is running for this product; retry when it finishes")
)

// Platform errors returned by gateway adapters
var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("integration: platform authentication failed")
	ErrPlatformRateLimited     = errors.New("integration: platform rate limited")
	ErrPlatformNotFound        = errors.New("integration: platform resource not found")
)

// RemoteError wraps a failed marketplace call. It matches ErrRemoteFailure
// and unwraps to the adapter error.
type RemoteError struct {
	Op  string
	Err error
}

// NewRemoteError wraps err unless it already is a RemoteError.
func NewRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("marketplace %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRemoteFailure) match.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}
