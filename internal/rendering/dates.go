package rendering

import "time"

// OngoingMarker is rendered in place of an absent end date.
const OngoingMarker = "Hiện tại"

const storageDateLayout = "2006-01-02"

// MonthYear formats a stored ISO date for display as MM/YYYY. Unparseable
// values are shown as-is rather than dropped, so user input is never lost in
// the preview.
func MonthYear(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(storageDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("01/2006")
}

// Year formats a stored ISO date for display as YYYY.
func Year(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(storageDateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("2006")
}

// MonthYearRange renders "MM/YYYY - MM/YYYY", substituting the ongoing
// marker when the end date is absent. An entry with no dates at all renders
// as an empty string, not a dangling separator.
func MonthYearRange(start, end string) string {
	return dateRange(MonthYear(start), MonthYear(end))
}

// YearRange renders "YYYY - YYYY" with the same ongoing convention. Used by
// education sections, which display year-only.
func YearRange(start, end string) string {
	return dateRange(Year(start), Year(end))
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = OngoingMarker
	}
	return start + " - " + end
}
