package anchor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// DiscriminatorSize is the length of instruction and account discriminators.
const DiscriminatorSize = 8

// Discriminator prefixes instruction data and account data.
type Discriminator [DiscriminatorSize]byte

// UnmarshalJSON accepts the IDL form: an array of eight byte values.
func (d *Discriminator) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != DiscriminatorSize {
		return fmt.Errorf("discriminator has %d bytes, want %d", len(raw), DiscriminatorSize)
	}
	for i, v := range raw {
		if v < 0 || v > 255 {
			return fmt.Errorf("discriminator byte %d out of range: %d", i, v)
		}
		d[i] = byte(v)
	}
	return nil
}

func (d Discriminator) MarshalJSON() ([]byte, error) {
	raw := make([]int, DiscriminatorSize)
	for i, b := range d {
		raw[i] = int(b)
	}
	return json.Marshal(raw)
}

// IsZero reports whether the discriminator was never set.
func (d Discriminator) IsZero() bool { return d == Discriminator{} }

func sighash(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// InstructionDiscriminator returns sha256("global:<name>")[:8].
func InstructionDiscriminator(name string) Discriminator { return sighash("global", name) }

// AccountDiscriminator returns sha256("account:<Name>")[:8].
func AccountDiscriminator(name string) Discriminator { return sighash("account", name) }
