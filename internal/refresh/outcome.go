package refresh

import (
	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/toast"
)

// outcome is what an attempt concludes with.
type outcome struct {
	payload toast.Payload
	// success is set when the attempt ended in a successful refresh.
	success *planner.RefreshStatus
}

func (o outcome) dedupe() bool {
	return o.payload.Variant == toast.Warning
}

func outcomeFromStatus(msgs *messages.Catalog, status planner.RefreshStatus) outcome {
	switch status.State {
	case planner.StateSuccess:
		detail := msgs.RefreshSucceededDetail(status.UpdatedRecords)
		return outcome{
			payload: toast.Payload{Variant: toast.Success, Message: msgs.RefreshSucceeded, Detail: &detail},
			success: &status,
		}
	case planner.StateFailure:
		return outcome{
			payload: toast.Payload{Variant: toast.Error, Message: msgs.RefreshFailed, Detail: status.LastError},
		}
	default:
		detail := msgs.RefreshUnknownDetail
		return outcome{
			payload: toast.Payload{Variant: toast.Warning, Message: msgs.RefreshUnknown, Detail: &detail},
		}
	}
}

func errorOutcome(message string, err error) outcome {
	detail := err.Error()
	return outcome{
		payload: toast.Payload{Variant: toast.Error, Message: message, Detail: &detail},
	}
}

func timeoutOutcome(msgs *messages.Catalog) outcome {
	return outcome{
		payload: toast.Payload{Variant: toast.Warning, Message: msgs.StatusTimeout},
	}
}
