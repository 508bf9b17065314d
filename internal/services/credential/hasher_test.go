package credential

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pizzeria/internal/dependencies/mocks"
	"github.com/mcoot/pizzeria/internal/dependencies/random"
)

type HasherSuite struct {
	suite.Suite
	random *mocks.MockRandom
	hasher *Hasher
	ctx    context.Context
}

func TestHasherSuite(t *testing.T) {
	suite.Run(t, new(HasherSuite))
}

func (s *HasherSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.hasher = New(s.random, DefaultConfig())
	s.ctx = context.Background()
}

// Hash tests

func (s *HasherSuite) TestHashFormat() {
	s.random.QueueBytes([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03})

	cred, err := s.hasher.Hash(s.ctx, "margherita")
	s.Require().NoError(err)

	saltHex, digestHex, ok := strings.Cut(cred, ".")
	s.Require().True(ok)
	s.Equal("deadbeef00010203", saltHex)
	s.Len(digestHex, KeyLength*2)
	_, err = hex.DecodeString(digestHex)
	s.NoError(err)
	s.NotContains(cred, "margherita")
}

func (s *HasherSuite) TestHashIsDeterministicForSameSalt() {
	salt := []byte("saltsalt")
	s.random.QueueBytes(salt, salt)

	first, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.Require().NoError(err)
	second, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *HasherSuite) TestHashUsesFreshSaltEachCall() {
	first, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.Require().NoError(err)
	second, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.Require().NoError(err)

	s.NotEqual(first, second)

	ok, err := s.hasher.Verify(s.ctx, "pepperoni", first)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.hasher.Verify(s.ctx, "pepperoni", second)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *HasherSuite) TestHashFailsOnEntropyFailure() {
	s.random.FailWithEntropyError()

	cred, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.ErrorIs(err, random.ErrEntropyFailure)
	s.Empty(cred)
}

func (s *HasherSuite) TestHashFailsOnShortSalt() {
	s.random.QueueBytes([]byte{1, 2, 3})

	_, err := s.hasher.Hash(s.ctx, "pepperoni")
	s.ErrorIs(err, random.ErrEntropyFailure)
}

func (s *HasherSuite) TestHashRespectsCancelledContextWhileWaiting() {
	h := New(s.random, Config{MaxConcurrent: 1})
	s.Require().NoError(h.limiter.Acquire(s.ctx, 1))
	defer h.limiter.Release(1)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := h.Hash(ctx, "pepperoni")
	s.ErrorIs(err, context.Canceled)
}

// Verify tests

func (s *HasherSuite) TestVerifyRoundTrip() {
	for _, password := range []string{"a", "correct horse battery staple", "pässwörd", ""} {
		cred, err := s.hasher.Hash(s.ctx, password)
		s.Require().NoError(err)

		ok, err := s.hasher.Verify(s.ctx, password, cred)
		s.Require().NoError(err)
		s.True(ok, "password %q should verify", password)
	}
}

func (s *HasherSuite) TestVerifyRejectsWrongPassword() {
	cred, err := s.hasher.Hash(s.ctx, "hawaiian")
	s.Require().NoError(err)

	ok, err := s.hasher.Verify(s.ctx, "Hawaiian", cred)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *HasherSuite) TestVerifyRejectsTamperedDigest() {
	cred, err := s.hasher.Hash(s.ctx, "hawaiian")
	s.Require().NoError(err)

	last := cred[len(cred)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := cred[:len(cred)-1] + string(flipped)

	ok, err := s.hasher.Verify(s.ctx, "hawaiian", tampered)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *HasherSuite) TestVerifyMalformed() {
	cases := []string{
		"",
		"nodigest",
		".abcdef",
		"0011223344556677.not-hex",
		"0011223344556677.abcd",
	}
	for _, stored := range cases {
		ok, err := s.hasher.Verify(s.ctx, "anything", stored)
		s.ErrorIs(err, ErrMalformedCredential, "stored=%q", stored)
		s.False(ok)
	}
}

func (s *HasherSuite) TestDefaultConfigIsUsedForZeroConcurrency() {
	h := New(s.random, Config{})
	s.NotNil(h.limiter)

	cred, err := h.Hash(s.ctx, "quattro formaggi")
	s.Require().NoError(err)
	ok, err := h.Verify(s.ctx, "quattro formaggi", cred)
	s.Require().NoError(err)
	s.True(ok)
}
