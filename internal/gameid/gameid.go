// Package gameid generates sortable identifiers for games.
//
// An ID is a UUIDv7 (48-bit millisecond timestamp followed by random bits)
// written as 26 characters of Crockford base32, so IDs sort by creation time.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// Crockford base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

// Generator creates game IDs from a clock and an entropy source
type Generator struct {
	clock   quartz.Clock
	entropy io.Reader
}

// NewGenerator creates a generator. A nil clock uses the real clock and a nil
// entropy reader uses crypto/rand.
func NewGenerator(clock quartz.Clock, entropy io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: entropy}
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	var id [16]byte

	ms := uint64(g.clock.Now("gameid").UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if _, err := io.ReadFull(g.entropy, id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	// version 7, variant 10
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// Generate creates a game ID using the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

func decode(s string) ([16]byte, error) {
	var id [16]byte
	if err := Validate(s); err != nil {
		return id, err
	}

	var hi, lo uint64
	for i := 0; i < len(s); i++ {
		v := uint64(strings.IndexByte(alphabet, s[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}
	binary.BigEndian.PutUint64(id[:8], hi)
	binary.BigEndian.PutUint64(id[8:], lo)
	return id, nil
}

// Time returns the creation time encoded in a game ID
func Time(s string) (time.Time, error) {
	id, err := decode(s)
	if err != nil {
		return time.Time{}, err
	}
	var ms uint64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | uint64(id[i])
	}
	return time.UnixMilli(int64(ms)), nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// 26 characters carry 130 bits, so the first may only use the low 3
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
