package web

import "sync"

// listHub fans list-change signals out to live event streams. Subscriber
// channels are buffered and sends never block, so a slow stream coalesces
// bursts instead of stalling the mutation that triggered them.
type listHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newListHub() *listHub {
	return &listHub{subs: map[chan struct{}]struct{}{}}
}

func (h *listHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *listHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}
