package domain

// Default configuration values
const (
	DefaultMaxConcurrentServices = 3
	MinConcurrentServices        = 1
	MaxConcurrentServices        = 5

	// Global policy window applied when a mechanic has no configured
	// working hours.
	DefaultWorkdayOpen  = "08:00"
	DefaultWorkdayClose = "20:00"

	DefaultTaxRate        = 0.21
	DefaultInvoiceDueDays = 30
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses lists the statuses that participate in conflict
// checks and capacity counting.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusInProgress,
}

// OpenServiceStatuses lists the statuses that keep a vehicle in
// maintenance.
var OpenServiceStatuses = []ServiceStatus{
	ServiceStatusPending,
	ServiceStatusInProgress,
}
