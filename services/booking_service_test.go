package services

import (
	"testing"

	"stayfinder-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedGuest(t *testing.T, db *gorm.DB) models.Guest {
	t.Helper()
	guest := models.Guest{FullName: "Priya Sharma", Email: "priya@example.com"}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func seedAddon(t *testing.T, db *gorm.DB, name string, price float64, perDay, perPerson bool) models.Addon {
	t.Helper()
	addon := models.Addon{Name: name, Price: price, PerDay: perDay, PerPerson: perPerson, Active: true}
	require.NoError(t, db.Create(&addon).Error)
	return addon
}

func TestCreateBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(3))
	guest := seedGuest(t, db)
	breakfast := seedAddon(t, db, "Breakfast", 300, true, true)

	booking, err := svc.CreateBooking(CreateBookingInput{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    "2026-03-02",
		CheckOut:   "2026-03-05",
		Rooms:      2,
		Adults:     2,
		Addons: []AddonChoice{
			{AddonID: breakfast.ID, Quantity: 1, PersonCount: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, 2, booking.RoomsBooked)
	assert.NotEmpty(t, booking.ReferenceCode)
	assert.Contains(t, booking.ReferenceCode, "SF-")
	require.Len(t, booking.Addons, 1)
	// 300 * 1 qty * 3 nights * 2 persons
	assert.Equal(t, 1800.0, booking.Addons[0].LineTotal)
	// room 2500*3 + addons 1800 = 9300, nightly 2500 → 12% GST = 1116
	assert.Equal(t, 10416.0, booking.TotalAmount)
	assert.NotEmpty(t, booking.QuoteSnapshot)
}

func TestCreateBookingGatesOnAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(2))
	guest := seedGuest(t, db)

	seedBooking(t, db, property.ID, models.BookingStatusConfirmed, 2, 1, 4)

	_, err := svc.CreateBooking(CreateBookingInput{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    day(2).Format("2006-01-02"),
		CheckOut:   day(5).Format("2006-01-02"),
	})
	assert.ErrorIs(t, err, ErrRoomsUnavailable)

	// Adjacent interval goes through.
	booking, err := svc.CreateBooking(CreateBookingInput{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    day(4).Format("2006-01-02"),
		CheckOut:   day(6).Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
}

func TestCreateBookingValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(2))
	guest := seedGuest(t, db)

	t.Run("inverted dates", func(t *testing.T) {
		_, err := svc.CreateBooking(CreateBookingInput{
			PropertyID: property.ID,
			GuestID:    guest.ID,
			CheckIn:    "2026-03-05",
			CheckOut:   "2026-03-02",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := svc.CreateBooking(CreateBookingInput{
			PropertyID: 9999,
			GuestID:    guest.ID,
			CheckIn:    "2026-03-02",
			CheckOut:   "2026-03-05",
		})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := svc.CreateBooking(CreateBookingInput{
			CheckIn:  "2026-03-02",
			CheckOut: "2026-03-05",
		})
		assert.ErrorIs(t, err, ErrMissingIdentity)
	})
}

func TestBookingTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(3))
	guest := seedGuest(t, db)

	booking, err := svc.CreateBooking(CreateBookingInput{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    "2026-03-02",
		CheckOut:   "2026-03-04",
	})
	require.NoError(t, err)

	t.Run("confirm pending", func(t *testing.T) {
		confirmed, err := svc.ConfirmBooking(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	})

	t.Run("confirm twice is a no-op", func(t *testing.T) {
		confirmed, err := svc.ConfirmBooking(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	})

	t.Run("cancel is a status change", func(t *testing.T) {
		cancelled, err := svc.CancelBooking(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

		// row still exists
		var count int64
		db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("cancel twice is a no-op", func(t *testing.T) {
		cancelled, err := svc.CancelBooking(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID)
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.ConfirmBooking(9999)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestBuildQuote(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(3)) // nightly 2500
	pickup := seedAddon(t, db, "Airport pickup", 1200, false, false)

	quote, err := svc.BuildQuote(property.ID, "2026-03-02", "2026-03-04",
		[]AddonChoice{{AddonID: pickup.ID, Quantity: 1}},
		GuestCounts{Adults: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 5000.0, quote.RoomBaseAmount)
	assert.Equal(t, 1200.0, quote.AddonsTotal)
	assert.Equal(t, 0.12, quote.GSTRate)
	assert.Equal(t, 744.0, quote.TotalGST)
	assert.Equal(t, 6944.0, quote.BookingTotal)
}

func TestBuildQuoteSkipsInactiveAddons(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	property := seedProperty(t, db, intp(3))

	inactive := models.Addon{Name: "Retired addon", Price: 999, Active: false}
	require.NoError(t, db.Create(&inactive).Error)
	// The Active column carries default:true, so GORM drops the zero-value
	// false on insert; persist it explicitly.
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	quote, err := svc.BuildQuote(property.ID, "2026-03-02", "2026-03-03",
		[]AddonChoice{{AddonID: inactive.ID, Quantity: 1}},
		GuestCounts{Adults: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.AddonsTotal)
}
