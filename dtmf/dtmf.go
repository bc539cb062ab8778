package dtmf

// Tone represents a DTMF frequency pair in Hz. High is the column
// frequency of the telephone keypad, Low is the row frequency.
type Tone struct {
	High float64
	Low  float64
}

// keypadOrder lists the 16 mapped symbols row by row.
const keypadOrder = "123A456B789C*0#D"

// Frequencies returns the frequency pair for a keypad symbol per the
// DTMF standard. The second return value is false for symbols outside
// the 16-key set; an unmapped symbol is not an error, it simply has
// no tone.
func Frequencies(symbol byte) (Tone, bool) {
	switch symbol {
	case '1':
		return Tone{High: 1209.0, Low: 697.0}, true
	case '2':
		return Tone{High: 1336.0, Low: 697.0}, true
	case '3':
		return Tone{High: 1477.0, Low: 697.0}, true
	case 'A':
		return Tone{High: 1633.0, Low: 697.0}, true
	case '4':
		return Tone{High: 1209.0, Low: 770.0}, true
	case '5':
		return Tone{High: 1336.0, Low: 770.0}, true
	case '6':
		return Tone{High: 1477.0, Low: 770.0}, true
	case 'B':
		return Tone{High: 1633.0, Low: 770.0}, true
	case '7':
		return Tone{High: 1209.0, Low: 852.0}, true
	case '8':
		return Tone{High: 1336.0, Low: 852.0}, true
	case '9':
		return Tone{High: 1477.0, Low: 852.0}, true
	case 'C':
		return Tone{High: 1633.0, Low: 852.0}, true
	case '*':
		return Tone{High: 1209.0, Low: 941.0}, true
	case '0':
		return Tone{High: 1336.0, Low: 941.0}, true
	case '#':
		return Tone{High: 1477.0, Low: 941.0}, true
	case 'D':
		return Tone{High: 1633.0, Low: 941.0}, true
	}
	return Tone{}, false
}

// Symbols returns the mapped keypad symbols in row order, one byte
// per key.
func Symbols() string {
	return keypadOrder
}
