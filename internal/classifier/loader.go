
package classifier

import "sync"

// Loader reads the artifact at path on first use and shares the result.
// Failed loads are retried on the next call so a missing artifact can be
// provisioned without restarting the process.
type Loader struct {
	path string

	mu    sync.Mutex
	model *Linear
}

func NewLoader(path string) *Loader { return &Loader{path: path} }

func (l *Loader) Path() string { return l.path }

func (l *Loader) Load() (*Linear, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.model != nil {
		return l.model, nil
	}
	m, err := Load(l.path)
	if err != nil {
		return nil, err
	}
	l.model = m
	return m, nil
}
