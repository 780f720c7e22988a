// Package binding is the string-in, string-out boundary for embedding the
// codec in other runtimes.
//
// The package-level functions are stateless. A Session adds a last-error
// slot for callers that can only check for an empty result and then ask
// what went wrong. Each Session owns its slot, so concurrent callers using
// separate sessions never observe each other's errors.
package binding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Neumenon/aon/aon"
)

// ErrNoRoot is returned when the root schema name is empty.
var ErrNoRoot = fmt.Errorf("%w: root schema name required", aon.ErrInput)

// Result is the outcome of a conversion. Exactly one of Text and Err is set.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// JSONToAON converts JSON text to AON text using rootName for the root schema.
func JSONToAON(json, rootName string, opts ...aon.Option) (string, error) {
	if rootName == "" {
		return "", ErrNoRoot
	}
	doc, err := aon.FromJSON([]byte(json))
	if err != nil {
		return "", err
	}
	return aon.Marshal(doc, rootName, opts...)
}

// AONToJSON converts AON text to compact JSON text.
func AONToJSON(text string) (string, error) {
	v, err := aon.Unmarshal(text)
	if err != nil {
		return "", err
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Session wraps the conversions with a per-session last-error slot.
// The slot is cleared when a call starts and set when it fails.
type Session struct {
	opts []aon.Option

	mu      sync.Mutex
	lastErr error
}

// NewSession creates a session. opts apply to every JSONToAON call.
func NewSession(opts ...aon.Option) *Session {
	return &Session{opts: opts}
}

// JSONToAON converts JSON text to AON text.
func (s *Session) JSONToAON(json, rootName string) Result {
	s.clear()
	text, err := JSONToAON(json, rootName, s.opts...)
	return s.finish(text, err)
}

// AONToJSON converts AON text to JSON text.
func (s *Session) AONToJSON(text string) Result {
	s.clear()
	out, err := AONToJSON(text)
	return s.finish(out, err)
}

// LastError returns the message of the most recent failure, if the most
// recent call failed.
func (s *Session) LastError() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return "", false
	}
	return s.lastErr.Error(), true
}

// Err returns the most recent failure as an error value.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) clear() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Session) finish(text string, err error) Result {
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return Result{Err: err}
	}
	return Result{Text: text}
}

// IsInputError reports whether err was caused by unusable input rather
// than by the document structure.
func IsInputError(err error) bool {
	return errors.Is(err, aon.ErrInput) || errors.Is(err, aon.ErrEmptyInput)
}
