package delivery

import "testing"

func sliderDays(dates ...string) []DeliveryDay {
	days := make([]DeliveryDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, DeliveryDay{Date: date})
	}
	return days
}

func TestNewDaySliderSortsAndPages(t *testing.T) {
	days := sliderDays("2026-09-03", "2026-09-01", "2026-09-02", "2026-09-04", "2026-09-05")
	slider := NewDaySlider(days, 420, 105)

	if got := slider.Days(); got[0].Date != "2026-09-01" || got[4].Date != "2026-09-05" {
		t.Fatalf("expected ascending date order, got %v", got)
	}
	// 4 tabs fit, 5 days: the partial second page must exist.
	if slider.Bars() != 2 {
		t.Fatalf("expected 2 pages, got %d", slider.Bars())
	}
	if got := slider.VisibleDays(); len(got) != 4 {
		t.Fatalf("expected 4 visible days, got %d", len(got))
	}
}

func TestDaySliderBoundsAreNoOps(t *testing.T) {
	slider := NewDaySlider(sliderDays("2026-09-01", "2026-09-02", "2026-09-03"), 210, 105)

	if slider.SlideLeft() {
		t.Fatal("slide left at first page must be a no-op")
	}
	if slider.CurrentBar() != 0 {
		t.Fatalf("expected page 0, got %d", slider.CurrentBar())
	}
	if slider.LeftEnabled() {
		t.Fatal("left control must be disabled at first page")
	}

	if !slider.SlideRight() {
		t.Fatal("expected slide right to move")
	}
	if slider.SlideRight() {
		t.Fatal("slide right at last page must be a no-op")
	}
	if slider.CurrentBar() != 1 {
		t.Fatalf("expected page 1, got %d", slider.CurrentBar())
	}
	if slider.RightEnabled() {
		t.Fatal("right control must be disabled at last page")
	}

	if !slider.SlideLeft() {
		t.Fatal("expected slide left to move back")
	}
	if slider.CurrentBar() != 0 {
		t.Fatalf("expected page 0 after sliding back, got %d", slider.CurrentBar())
	}
}

func TestDaySliderPartialLastPage(t *testing.T) {
	slider := NewDaySlider(sliderDays("2026-09-01", "2026-09-02", "2026-09-03"), 210, 105)
	slider.SlideRight()

	got := slider.VisibleDays()
	if len(got) != 1 || got[0].Date != "2026-09-03" {
		t.Fatalf("expected single day on last page, got %v", got)
	}
}

func TestDaySliderEmptyAndDegenerateWidths(t *testing.T) {
	empty := NewDaySlider(nil, 420, 105)
	if empty.Bars() != 1 {
		t.Fatalf("expected one page for empty slider, got %d", empty.Bars())
	}
	if empty.SlideRight() || empty.SlideLeft() {
		t.Fatal("empty slider must not move")
	}
	if got := empty.VisibleDays(); got != nil {
		t.Fatalf("expected no visible days, got %v", got)
	}

	narrow := NewDaySlider(sliderDays("2026-09-01", "2026-09-02"), 50, 105)
	if narrow.Bars() != 2 {
		t.Fatalf("expected one tab per page for narrow container, got %d bars", narrow.Bars())
	}
}

func TestDaySliderDayLookup(t *testing.T) {
	slider := NewDaySlider(sliderDays("2026-09-01", "2026-09-02"), 420, 105)

	if _, ok := slider.Day("2026-09-02"); !ok {
		t.Fatal("expected known date to resolve")
	}
	if _, ok := slider.Day("2026-12-24"); ok {
		t.Fatal("expected unknown date to miss")
	}
}
