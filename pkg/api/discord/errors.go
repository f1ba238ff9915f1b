package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/puzzup/backend/pkg/api"
)

var (
	// ErrInvalidArgument wraps every failure of the permission algebra:
	// bad coercion inputs, conflicting allow/deny/ignore bits, and ids used
	// as both a user and a role.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrChannelNotFound indicates the referenced channel no longer exists
	// remotely, e.g. it was deleted out-of-band.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrGuildFull indicates the category placement ran out of candidate
	// categories: the guild's channel budget is presumed exhausted.
	ErrGuildFull = errors.New("all candidate categories are at max capacity")

	ErrRateLimit = errors.New("rate limit")
)

// maxChannelsCode is the error code Discord returns when a category already
// holds the maximum number of child channels.
const maxChannelsCode = "CHANNEL_PARENT_MAX_CHANNELS"

// APIError carries a non-2xx response with its structured error body.
type APIError struct {
	Status int
	Body   api.JSON
}

func (e *APIError) Error() string {
	if msg, err := e.Body.GetString("message"); err == nil && msg != "" {
		return fmt.Sprintf("discord responded %d: %s", e.Status, msg)
	}

	return fmt.Sprintf("discord responded %d", e.Status)
}

// IsMaxChannels reports whether this error is Discord's "category at max
// channel capacity" rejection of a parent_id change.
func (e *APIError) IsMaxChannels() bool {
	errs, err := e.Body.GetArray("errors.parent_id._errors")
	if err != nil || len(errs) == 0 {
		return false
	}

	code, err := errs[0].GetString("code")
	return err == nil && code == maxChannelsCode
}

// IsMaxChannelsError reports whether err is an APIError carrying the
// category-capacity code.
func IsMaxChannelsError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsMaxChannels()
}

func IsRateLimit(err error) (time.Time, bool) {
	if !errors.Is(err, ErrRateLimit) {
		return time.Time{}, false
	}

	_, resetAt, found := strings.Cut(err.Error(), ":")
	if !found {
		return time.Time{}, false
	}

	resetAtInt, err := strconv.Atoi(resetAt)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(int64(resetAtInt), 0), true
}

func wrapRateLimit(resetAt int64) error {
	return fmt.Errorf("%w:%d", ErrRateLimit, resetAt)
}
