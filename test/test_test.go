package test_test

import (
	"testing"

	"github.com/rtoumazet/saturnin-sub002/test"
)

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(10)
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, r.String(), "")

	r.Write([]byte("abcde"))
	test.ExpectEquality(t, r.String(), "abcde")

	r.Write([]byte("fgh"))
	test.ExpectEquality(t, r.String(), "abcdefgh")

	r.Write([]byte("ij"))
	test.ExpectEquality(t, r.String(), "abcdefghij")

	r.Write([]byte("kl"))
	test.ExpectEquality(t, r.String(), "cdefghijkl")

	r.Write([]byte("1234567890ABC"))
	test.ExpectEquality(t, r.String(), "4567890ABC")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")
}

func TestCappedWriter(t *testing.T) {
	c, err := test.NewCappedWriter(10)
	test.ExpectEquality(t, err, nil)
	test.ExpectEquality(t, c.String(), "")

	c.Write([]byte("a"))
	test.ExpectEquality(t, c.String(), "a")

	c.Write([]byte("bcd"))
	test.ExpectEquality(t, c.String(), "abcd")

	c.Write([]byte("efghij"))
	test.ExpectEquality(t, c.String(), "abcdefghij")

	c.Write([]byte("klm"))
	test.ExpectEquality(t, c.String(), "abcdefghij")

	c.Reset()
	test.ExpectEquality(t, c.String(), "")
}
