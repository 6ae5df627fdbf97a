package delivery

import "sort"

// DaySlider pages delivery days into a fixed-width tab strip. The window size
// comes from the available container width divided by the per-tab width; the
// slider itself only tracks which page is visible.
type DaySlider struct {
	days       []DeliveryDay
	tabsPerBar int
	bars       int
	currentBar int
}

// NewDaySlider sorts the days ascending by date and computes the paging
// geometry. Widths at or below zero fall back to a single tab per page.
func NewDaySlider(days []DeliveryDay, containerWidth, tabWidth int) *DaySlider {
	sorted := make([]DeliveryDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	tabsPerBar := 1
	if tabWidth > 0 && containerWidth >= tabWidth {
		tabsPerBar = containerWidth / tabWidth
	}

	bars := 1
	if len(sorted) > 0 {
		bars = (len(sorted) + tabsPerBar - 1) / tabsPerBar
	}

	return &DaySlider{
		days:       sorted,
		tabsPerBar: tabsPerBar,
		bars:       bars,
	}
}

// Days returns all days in ascending date order.
func (s *DaySlider) Days() []DeliveryDay {
	return s.days
}

// Bars returns the number of pages.
func (s *DaySlider) Bars() int {
	return s.bars
}

// CurrentBar returns the visible page index, always within [0, bars-1].
func (s *DaySlider) CurrentBar() int {
	return s.currentBar
}

// VisibleDays returns the days on the current page.
func (s *DaySlider) VisibleDays() []DeliveryDay {
	start := s.currentBar * s.tabsPerBar
	if start >= len(s.days) {
		return nil
	}
	end := start + s.tabsPerBar
	if end > len(s.days) {
		end = len(s.days)
	}
	return s.days[start:end]
}

// SlideRight moves one page right. At the last page it is a no-op and reports
// false; the right control is disabled in that position.
func (s *DaySlider) SlideRight() bool {
	if s.currentBar >= s.bars-1 {
		return false
	}
	s.currentBar++
	return true
}

// SlideLeft moves one page left, symmetric to SlideRight.
func (s *DaySlider) SlideLeft() bool {
	if s.currentBar <= 0 {
		return false
	}
	s.currentBar--
	return true
}

// LeftEnabled reports whether the left control is active.
func (s *DaySlider) LeftEnabled() bool {
	return s.currentBar > 0
}

// RightEnabled reports whether the right control is active.
func (s *DaySlider) RightEnabled() bool {
	return s.currentBar < s.bars-1
}

// Day returns the day with the given date, if present.
func (s *DaySlider) Day(date string) (DeliveryDay, bool) {
	for _, day := range s.days {
		if day.Date == date {
			return day, true
		}
	}
	return DeliveryDay{}, false
}
