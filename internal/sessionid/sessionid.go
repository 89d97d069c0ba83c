// Package sessionid generates time-sortable identifiers for game sessions.
package sessionid

import (
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Crockford base32, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generate returns a new session ID: a UUIDv7 encoded as 26 base32 chars.
func Generate() string {
	return New(quartz.NewReal())
}

// New returns a session ID whose timestamp comes from clock.
func New(clock quartz.Clock) string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("sessionid: " + err.Error())
	}
	stampMillis(&id, clock.Now())
	return encode(id)
}

// stampMillis overwrites the 48-bit timestamp of a UUIDv7.
func stampMillis(id *uuid.UUID, t time.Time) {
	ms := t.UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}
}

// encode packs 128 bits into 26 five-bit groups, left-padded with two zero bits.
func encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)

	// bit position within the 130-bit padded value
	for i := 0; i < Length; i++ {
		var v byte
		for bit := 0; bit < 5; bit++ {
			pos := i*5 + bit - 2
			v <<= 1
			if pos >= 0 && id[pos/8]&(0x80>>(pos%8)) != 0 {
				v |= 1
			}
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Time extracts the creation time from an ID.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	var ms int64
	// the first 50 bits cover the 2 pad bits and the 48-bit timestamp
	for i := 0; i < 10; i++ {
		ms = ms<<5 | int64(strings.IndexByte(alphabet, id[i]))
	}
	return time.UnixMilli(ms), nil
}

// Validate checks that id is 26 base32 characters representing at most 128 bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
