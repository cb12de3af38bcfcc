package main

// dispatcher keeps injections in dictation order while transcriptions run
// concurrently. A slot is reserved the moment a dictation stops, before
// its transcription starts; a single worker then delivers fulfilled slots
// strictly in reservation order, so a slow transcription can never be
// overtaken by a faster later one.
type dispatcher struct {
	slots   chan chan string
	stopped chan struct{}
}

// newDispatcher starts the delivery worker. deliver is called once per
// fulfilled slot, in reservation order, with the transcribed text.
func newDispatcher(depth int, deliver func(text string)) *dispatcher {
	d := &dispatcher{
		slots:   make(chan chan string, depth),
		stopped: make(chan struct{}),
	}
	go func() {
		defer close(d.stopped)
		for slot := range d.slots {
			if text := <-slot; text != "" {
				deliver(text)
			}
		}
	}()
	return d
}

// reserve claims the next delivery slot. The caller must fulfill it with
// exactly one send: the text to inject, or "" to skip the slot (failed or
// empty transcription).
func (d *dispatcher) reserve() chan<- string {
	slot := make(chan string, 1)
	d.slots <- slot
	return slot
}

// close stops accepting reservations and waits until every outstanding
// slot has been fulfilled and delivered.
func (d *dispatcher) close() {
	close(d.slots)
	<-d.stopped
}
