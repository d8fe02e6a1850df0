package constants

import "time"

const (
	AppName = "bankdash"

	// Display
	DateFormat     = "2006-01-02"
	DisplayTime    = "Jan 02, 2006 15:04"
	PageSize       = 8
	RevealInitial  = 8
	RevealStep     = 8
	CompleteDelay  = 1500 * time.Millisecond
	RequestTimeout = 10 * time.Second
)

// Sort keys shared by the list commands.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortAmountHigh = "amount-high"
	SortAmountLow  = "amount-low"
	SortName       = "name"
)
