package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

func staffPair() []StaffResource {
	return []StaffResource{
		{ID: 1, Name: "Анна", Available: true},
		{ID: 2, Name: "Мария", Available: true},
	}
}

func activeAppointment(staffID int64, start types.TimeString, duration int) *Appointment {
	return &Appointment{
		StaffID:              staffID,
		StartTime:            start,
		Status:               StatusConfirmed,
		TotalDurationMinutes: duration,
	}
}

func TestCandidateStaff_BufferWidensBusyInterval(t *testing.T) {
	staff := staffPair()[:1]
	// Занятость 09:30-11:00, с буфером 5 минут блокируется [09:25, 11:05)
	day := []*Appointment{activeAppointment(1, "09:30", 90)}

	cases := []struct {
		start types.TimeString
		free  bool
	}{
		{"08:45", true},  // заканчивается в 09:20, буфер до 09:25 не задет
		{"09:00", false}, // буфер запроса дотягивается до 09:35
		{"10:45", false}, // начинается внутри занятого интервала
		{"11:00", false}, // 11:00 ещё внутри [09:25, 11:05)
		{"11:15", true},  // буфер запроса начинается в 11:10, после 11:05
	}

	for _, tc := range cases {
		candidates, err := CandidateStaff(staff, day, tc.start, 30, 5)
		require.NoError(t, err)
		if tc.free {
			assert.Len(t, candidates, 1, "start=%s should be free", tc.start)
		} else {
			assert.Empty(t, candidates, "start=%s should conflict", tc.start)
		}
	}
}

func TestCandidateStaff_BackToBackWithoutBuffer(t *testing.T) {
	staff := staffPair()[:1]
	day := []*Appointment{activeAppointment(1, "10:00", 60)}

	// Без буфера встык: 11:00 сразу после 10:00-11:00
	candidates, err := CandidateStaff(staff, day, "11:00", 30, 0)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestCandidateStaff_BusyStaffExcluded(t *testing.T) {
	staff := staffPair()
	day := []*Appointment{activeAppointment(1, "10:00", 60)}

	candidates, err := CandidateStaff(staff, day, "10:00", 30, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2), candidates[0].ID)
}

func TestCandidateStaff_PreservesInputOrder(t *testing.T) {
	staff := staffPair()

	candidates, err := CandidateStaff(staff, nil, "10:00", 30, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(1), candidates[0].ID)
	assert.Equal(t, int64(2), candidates[1].ID)
}

func TestCandidateStaff_CancelledAppointmentFreesSlot(t *testing.T) {
	staff := staffPair()[:1]
	cancelled := activeAppointment(1, "10:00", 60)
	cancelled.Status = StatusCancelled

	candidates, err := CandidateStaff(staff, []*Appointment{cancelled}, "10:00", 30, 5)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestCandidateStaff_UnavailableStaffSkipped(t *testing.T) {
	staff := []StaffResource{{ID: 1, Name: "Анна", Available: false}}

	candidates, err := CandidateStaff(staff, nil, "10:00", 30, 5)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCandidateStaff_ZeroDurationUsesFallback(t *testing.T) {
	staff := staffPair()[:1]
	// Повреждённая запись без длительности считается часовой
	legacy := activeAppointment(1, "10:00", 0)

	candidates, err := CandidateStaff(staff, []*Appointment{legacy}, "10:30", 15, 0)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = CandidateStaff(staff, []*Appointment{legacy}, "11:00", 15, 0)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestCountOverlappingStart(t *testing.T) {
	day := []*Appointment{
		activeAppointment(1, "10:00", 60),
		activeAppointment(2, "10:15", 30),
		activeAppointment(3, "12:00", 30),
	}

	count, err := CountOverlappingStart(day, "10:20", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = CountOverlappingStart(day, "09:00", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
