package engine

// maxKills is the number of entries a kill ring keeps.
const maxKills = 10

// killRing holds killed text, most recent first.
type killRing struct {
	entries [][]byte
}

func (k *killRing) push(text []byte) {
	k.entries = append([][]byte{text}, k.entries...)
	if len(k.entries) > maxKills {
		k.entries = k.entries[:maxKills]
	}
}

// extend adds text to the most recent entry, in front of it when the kill
// went backwards.
func (k *killRing) extend(text []byte, prepend bool) {
	if len(k.entries) == 0 {
		k.push(text)
		return
	}
	top := k.entries[0]
	joined := make([]byte, 0, len(top)+len(text))
	if prepend {
		joined = append(append(joined, text...), top...)
	} else {
		joined = append(append(joined, top...), text...)
	}
	k.entries[0] = joined
}

func (k *killRing) top() []byte {
	if len(k.entries) == 0 {
		return nil
	}
	return k.entries[0]
}

func (k *killRing) rotate() {
	if len(k.entries) < 2 {
		return
	}
	k.entries = append(k.entries[1:], k.entries[0])
}
