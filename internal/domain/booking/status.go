package booking

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusBooked
}

// MaxActiveAppointments is the booking cap for non-admin users. The cap
// counts every appointment the user holds, whatever its status.
const MaxActiveAppointments = 3
