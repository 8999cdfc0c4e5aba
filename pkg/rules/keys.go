package rules

// workerDate groups decision variables by worker and calendar date (formatted YYYYMMDD),
// the grouping several rules need before looking at shift kind or hospital.
type workerDate struct {
	worker string
	date   string
}
