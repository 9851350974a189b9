package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: these are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "consent not found"}
		s.Equal("consent not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("store failure")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeConflict, Message: "consent already revoked"}
		err2 := &Error{Code: CodeConflict, Message: "consent already rejected"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCode() {
	s.Run("wrapping a domain error keeps the original code", func() {
		inner := New(CodeNotFound, "consent not found")
		wrapped := Wrap(inner, CodeInternal, "lookup failed")
		s.True(HasCode(wrapped, CodeNotFound))
	})

	s.Run("wrapping a plain error uses the given code", func() {
		wrapped := Wrap(errors.New("boom"), CodeInternal, "lookup failed")
		s.True(HasCode(wrapped, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Run("returns code for domain errors", func() {
		s.Equal(CodeConflict, CodeOf(New(CodeConflict, "stale")))
	})

	s.Run("returns internal for plain errors", func() {
		s.Equal(CodeInternal, CodeOf(errors.New("boom")))
	})
}
