package entity

import "time"

// GuideAnalytics summarizes a guide's confirmed tours.
type GuideAnalytics struct {
	ToursThisMonth int
	UpcomingTours  int
	ToursPerMonth  []MonthlyTourCount
	Reminders      []TourReminder
}

// MonthlyTourCount is the number of confirmed tours starting in a month.
type MonthlyTourCount struct {
	Year  int
	Month time.Month
	Count int
}

// TourReminder is a preparation hint for an upcoming tour.
type TourReminder struct {
	BookingID string
	TourName  string
	StartDate time.Time
	Reminder  string
}
