package businessflow

import "sync"

// scenarioLocks hands out one mutex per scenario id so mutations on the same
// scenario never interleave while different scenarios proceed in parallel.
type scenarioLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newScenarioLocks() *scenarioLocks {
	return &scenarioLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *scenarioLocks) forScenario(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
