package theme

import (
	"context"
	"sync"
	"time"
)

// Scheme is the operating environment's colour-scheme signal.
type Scheme interface {
	// Dark reports the current preference.
	Dark() bool
	// Subscribe registers fn for change notifications. The returned func
	// removes the subscription and must be called when the caller is done.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

type listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(bool)
}

func (l *listeners) add(fn func(bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(bool))
	}
	l.nextID++
	id := l.nextID
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.fns, id)
		})
	}
}

func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

func (l *listeners) notify(dark bool) {
	l.mu.Lock()
	fns := make([]func(bool), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// StaticScheme is a manually driven signal.
type StaticScheme struct {
	mu   sync.RWMutex
	dark bool
	subs listeners
}

// NewStaticScheme returns a StaticScheme with the given initial value.
func NewStaticScheme(dark bool) *StaticScheme {
	return &StaticScheme{dark: dark}
}

func (s *StaticScheme) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

func (s *StaticScheme) Subscribe(fn func(bool)) func() {
	return s.subs.add(fn)
}

// Set changes the signal and notifies subscribers when the value differs.
func (s *StaticScheme) Set(dark bool) {
	s.mu.Lock()
	changed := s.dark != dark
	s.dark = dark
	s.mu.Unlock()

	if changed {
		s.subs.notify(dark)
	}
}

// Subscribers returns the number of live subscriptions.
func (s *StaticScheme) Subscribers() int {
	return s.subs.count()
}

// Detector queries the environment for a dark preference.
type Detector func(ctx context.Context) bool

// PollingScheme polls a Detector while it has subscribers and notifies them
// when the answer changes.
type PollingScheme struct {
	detect   Detector
	interval time.Duration

	mu     sync.Mutex
	dark   bool
	cancel context.CancelFunc
	done   chan struct{}
	subs   listeners
}

// NewPollingScheme returns a scheme seeded with an initial detection.
func NewPollingScheme(detect Detector, interval time.Duration) *PollingScheme {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollingScheme{
		detect:   detect,
		interval: interval,
		dark:     detect(context.Background()),
	}
}

func (p *PollingScheme) Dark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Subscribe starts polling on the first subscription. Polling stops once the
// last subscription is removed.
func (p *PollingScheme) Subscribe(fn func(bool)) func() {
	remove := p.subs.add(fn)

	p.mu.Lock()
	if p.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.done = make(chan struct{})
		go p.poll(ctx, p.done)
	}
	p.mu.Unlock()

	return func() {
		remove()
		if p.subs.count() > 0 {
			return
		}
		p.stop()
	}
}

func (p *PollingScheme) stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *PollingScheme) poll(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dark := p.detect(ctx)
			p.mu.Lock()
			changed := dark != p.dark
			p.dark = dark
			p.mu.Unlock()
			if changed && ctx.Err() == nil {
				p.subs.notify(dark)
			}
		}
	}
}
