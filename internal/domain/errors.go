package domain

// MissingDataError marks a recoverable data gap - the provider answered
// but had nothing useful for the symbol. Callers that care can pick it
// out with errors.As; the analysis service logs the gap and leaves the
// section nil instead of aborting the run.
type MissingDataError struct {
	Err error
}

func (e MissingDataError) Error() string {
	return e.Err.Error()
}

func (e MissingDataError) Unwrap() error {
	return e.Err
}
