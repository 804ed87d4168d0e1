package submit

import (
	"errors"
	"fmt"

	"github.com/aretw0/conduit/pkg/domain"
)

// UserMessage turns a submission error into the text shown to the user.
// Timeouts, unreachable services and remote failures read differently;
// endpoint names the verdict service in the unreachable case.
func UserMessage(err error, endpoint string) string {
	var remote *domain.RemoteError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrTimeout):
		return "Request timed out. The verdict service may be slow or unreachable. Please try again."
	case errors.Is(err, domain.ErrNetworkUnreachable):
		return fmt.Sprintf("Cannot connect to the verdict service at %s. Please check that it is running and reachable.", endpoint)
	case errors.As(err, &remote):
		return fmt.Sprintf("The verdict service could not check the pipeline (status %d).", remote.StatusCode)
	case errors.Is(err, domain.ErrRemote):
		return "The verdict service could not check the pipeline."
	}
	return err.Error()
}

// Retryable reports whether resubmitting the same pipeline may succeed.
func Retryable(err error) bool {
	return errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrNetworkUnreachable)
}
