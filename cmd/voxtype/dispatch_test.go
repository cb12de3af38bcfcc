package main

import (
	"testing"
	"time"
)

func TestDispatcherDeliversInReservationOrder(t *testing.T) {
	delivered := make(chan string, 3)
	d := newDispatcher(16, func(text string) {
		delivered <- text
	})

	// Reserve in dictation order, then fulfill out of order: the second
	// transcription finishes before the first.
	first := d.reserve()
	second := d.reserve()
	second <- "second"
	time.Sleep(10 * time.Millisecond)
	first <- "first"

	if got := <-delivered; got != "first" {
		t.Errorf("first delivery = %q, want %q", got, "first")
	}
	if got := <-delivered; got != "second" {
		t.Errorf("second delivery = %q, want %q", got, "second")
	}

	d.close()
}

func TestDispatcherSkipsEmptySlots(t *testing.T) {
	delivered := make(chan string, 3)
	d := newDispatcher(16, func(text string) {
		delivered <- text
	})

	a := d.reserve()
	b := d.reserve()
	c := d.reserve()
	a <- "kept"
	b <- "" // failed or empty transcription
	c <- "also kept"
	d.close()

	if got := <-delivered; got != "kept" {
		t.Errorf("first delivery = %q, want %q", got, "kept")
	}
	if got := <-delivered; got != "also kept" {
		t.Errorf("second delivery = %q, want %q", got, "also kept")
	}
	select {
	case extra := <-delivered:
		t.Errorf("unexpected extra delivery %q", extra)
	default:
	}
}

func TestDispatcherCloseWaitsForOutstandingSlot(t *testing.T) {
	delivered := make(chan string, 1)
	d := newDispatcher(16, func(text string) {
		delivered <- text
	})

	slot := d.reserve()
	go func() {
		time.Sleep(10 * time.Millisecond)
		slot <- "late"
	}()
	d.close()

	select {
	case got := <-delivered:
		if got != "late" {
			t.Errorf("delivery = %q, want %q", got, "late")
		}
	default:
		t.Error("close() returned before the outstanding slot was delivered")
	}
}
