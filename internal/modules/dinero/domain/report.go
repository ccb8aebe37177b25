package domain

import "time"

// Mode names the operating mode of a run.
type Mode string

const (
	ModeVerify Mode = "verify"
	ModePost   Mode = "post"
)

// Report is the outcome of a successful run.
type Report struct {
	Mode           Mode
	OrganizationID string
	Organization   Organization
	Voucher        *Voucher
	Booked         bool
}

// RunResult is the audit record emitted after every run that got past credential loading.
type RunResult struct {
	RunID          string
	Mode           Mode
	OrganizationID string
	Success        bool
	Error          string
	VoucherGUID    string
	FinishedAt     time.Time
}

// NewRunResult summarises a run from its report and error.
func NewRunResult(runID string, mode Mode, organizationID string, report *Report, err error, finishedAt time.Time) RunResult {
	result := RunResult{
		RunID:          runID,
		Mode:           mode,
		OrganizationID: organizationID,
		Success:        err == nil,
		FinishedAt:     finishedAt.UTC(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	if report != nil && report.Voucher != nil {
		result.VoucherGUID = report.Voucher.GUID
	}
	return result
}
