package parse

import (
	"errors"
	"sync"

	"github.com/signadot/jsondoc/debug"
)

// ErrorHandler decides what happens when the parser meets malformed
// input. Returning a non-nil error aborts the parse with that error.
// Returning nil asks the parser to recover and continue; in that case
// the result contains Null placeholders for the values it could not
// read.
type ErrorHandler interface {
	OnParseError(*ParseError) error
}

type HandlerFunc func(*ParseError) error

func (f HandlerFunc) OnParseError(e *ParseError) error {
	return f(e)
}

// LogAndAbort is the default handler. It aborts on the first error,
// logging it when JSONDOC_DEBUG_PARSE is set.
func LogAndAbort() ErrorHandler {
	return HandlerFunc(func(e *ParseError) error {
		if debug.Parse() {
			debug.Logf("%s", e)
		}
		return e
	})
}

// Throw aborts on the first error without logging.
func Throw() ErrorHandler {
	return HandlerFunc(func(e *ParseError) error { return e })
}

// Collector records every error and lets parsing continue. It is meant for
// lint style tooling; a tree parsed through a Collector with errors
// should not be trusted as data.
type Collector struct {
	// Max, if positive, aborts the parse once that many errors are
	// recorded.
	Max int

	mu   sync.Mutex
	errs []*ParseError
}

func (c *Collector) OnParseError(e *ParseError) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, e)
	if c.Max > 0 && len(c.errs) >= c.Max {
		return e
	}
	return nil
}

func (c *Collector) Errors() []*ParseError {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]*ParseError, len(c.errs))
	copy(res, c.errs)
	return res
}

// Err joins the recorded errors, or returns nil if there are none.
func (c *Collector) Err() error {
	errs := c.Errors()
	if len(errs) == 0 {
		return nil
	}
	all := make([]error, len(errs))
	for i, e := range errs {
		all[i] = e
	}
	return errors.Join(all...)
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
}
