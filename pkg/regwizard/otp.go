package regwizard

import "strings"

// OTPLength is the number of digit slots in the verification code input.
const OTPLength = 4

// OTPBuffer holds the 4 single-digit slots of the code input. Each slot keeps
// at most one digit; typing into a filled slot replaces it (last character
// wins), matching how segmented code inputs behave.
type OTPBuffer struct {
	slots [OTPLength]string
}

// Set writes input into slot i. Only the last typed character is kept, and
// non-digit input clears the slot. Out-of-range indexes are ignored.
func (b *OTPBuffer) Set(i int, input string) {
	if i < 0 || i >= OTPLength {
		return
	}
	if input == "" {
		b.slots[i] = ""
		return
	}
	last := input[len(input)-1:]
	if last < "0" || last > "9" {
		return
	}
	b.slots[i] = last
}

// Paste fills the buffer from a pasted string, taking up to 4 leading digits.
// Non-digit characters stop the fill.
func (b *OTPBuffer) Paste(input string) {
	b.Clear()
	for i, r := range input {
		if i >= OTPLength || r < '0' || r > '9' {
			break
		}
		b.slots[i] = string(r)
	}
}

// Clear empties every slot.
func (b *OTPBuffer) Clear() {
	b.slots = [OTPLength]string{}
}

// Complete reports whether all 4 slots hold a digit.
func (b *OTPBuffer) Complete() bool {
	for _, s := range b.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Code returns the concatenated digits entered so far.
func (b *OTPBuffer) Code() string {
	return strings.Join(b.slots[:], "")
}

// Slots returns a copy of the slot contents for rendering.
func (b *OTPBuffer) Slots() [OTPLength]string {
	return b.slots
}
