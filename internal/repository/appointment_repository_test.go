package repository

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolbook/internal/model"
)

// Listings sort on the stored date/time strings, not on parsed calendar
// values. These tests pin that contract: zero-padded input sorts
// chronologically, unpadded input does not, and the SQL order clause is the
// string comparison that produces exactly this.
func TestAppointmentOrderClause(t *testing.T) {
	assert.Equal(t, "date asc, time asc", appointmentOrder)
}

func sortAsListing(appts []model.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}

func TestAppointmentListingOrderIsLexicographic(t *testing.T) {
	t.Run("zero-padded values sort chronologically", func(t *testing.T) {
		appts := []model.Appointment{
			{Date: "2024-05-02", Time: "14:00"},
			{Date: "2024-05-01", Time: "09:30"},
			{Date: "2024-05-01", Time: "08:00"},
		}
		sortAsListing(appts)

		assert.Equal(t, "2024-05-01", appts[0].Date)
		assert.Equal(t, "08:00", appts[0].Time)
		assert.Equal(t, "2024-05-01", appts[1].Date)
		assert.Equal(t, "09:30", appts[1].Time)
		assert.Equal(t, "2024-05-02", appts[2].Date)
	})

	t.Run("unpadded values sort out of chronological order", func(t *testing.T) {
		// "2024-5-1" is May 1st but compares after "2024-05-02" byte-wise;
		// that is why writes normalize numeric dates before storage
		appts := []model.Appointment{
			{Date: "2024-5-1", Time: "10:00"},
			{Date: "2024-05-02", Time: "10:00"},
		}
		sortAsListing(appts)

		assert.Equal(t, "2024-05-02", appts[0].Date)
		assert.Equal(t, "2024-5-1", appts[1].Date)
	})
}
