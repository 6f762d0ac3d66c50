// Package events provides the dated extra-payment events injected into loan
// simulations.
package events

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

// Event represents an extra payment applied in every month listed in DateList.
type Event struct {
	Name     string
	Amount   float64
	DateList []time.Time
}

// NewOneTime creates an event that fires in a single month.
func NewOneTime(name string, amount float64, date time.Time) Event {
	return Event{Name: name, Amount: amount, DateList: []time.Time{datetime.MonthStart(date)}}
}

// NewRecurring creates an event firing every frequency months from start
// through end inclusive.
func NewRecurring(name string, amount float64, start, end time.Time, frequency int) (Event, error) {
	event := Event{Name: name, Amount: amount}
	if err := event.FormDateList(start, end, frequency); err != nil {
		return Event{}, err
	}
	return event, nil
}

// FormDateList identifies all months where the event takes place and stores
// them in DateList.
func (event *Event) FormDateList(start, end time.Time, frequency int) error {
	if frequency <= 0 {
		return fmt.Errorf("event %s: frequency must be positive, got %d", event.Name, frequency)
	}
	startDate := datetime.MonthStart(start)
	endDate := datetime.MonthStart(end)
	if endDate.Before(startDate) {
		return fmt.Errorf("event %s: end %s is before start %s",
			event.Name, datetime.Format(endDate), datetime.Format(startDate))
	}

	dateList := []time.Time{startDate}
	for {
		nextDate := dateList[len(dateList)-1].AddDate(0, frequency, 0)
		if nextDate.After(endDate) {
			break
		}
		dateList = append(dateList, nextDate)
	}
	event.DateList = dateList
	return nil
}

// OccursOn reports whether the event fires in the month of date.
func (event Event) OccursOn(date time.Time) bool {
	for _, eventDate := range event.DateList {
		if datetime.SameMonth(eventDate, date) {
			return true
		}
	}
	return false
}

// AmountForDate sums the amounts of all events firing in the month of date.
func AmountForDate(events []Event, date time.Time) float64 {
	amount := 0.0
	for _, event := range events {
		for _, eventDate := range event.DateList {
			if datetime.SameMonth(eventDate, date) {
				amount += event.Amount
			}
		}
	}
	return amount
}

// AmountBetween sums event amounts dated strictly after `after` and up to and
// including `through`.
func AmountBetween(events []Event, after, through time.Time) float64 {
	amount := 0.0
	for _, event := range events {
		for _, eventDate := range event.DateList {
			if eventDate.After(after) && !eventDate.After(through) {
				amount += event.Amount
			}
		}
	}
	return amount
}
