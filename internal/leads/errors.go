package leads

import "errors"

var (
	ErrNotFound = errors.New("leads: not found")
	// ErrNotAssigned covers both a missing lead and a lead owned by someone else.
	ErrNotAssigned        = errors.New("leads: not found or not assigned to caller")
	ErrInvalidTemperature = errors.New("leads: temperature must be hot, warm or cold")
	ErrAlreadyClosed      = errors.New("leads: already closed")
	ErrFutureAppointment  = errors.New("leads: cannot close with a future appointment")
	ErrAppointmentInput   = errors.New("leads: appointment date and time slot required")
	ErrAppointmentPast    = errors.New("leads: appointment date must be in the future")
	ErrAppointmentEarly   = errors.New("leads: appointment must be after the assignment date")
	ErrSlotTaken          = errors.New("leads: time slot already booked")
	ErrScheduleScope      = errors.New("leads: schedule type must be today or all")
)
