package form

// Calculator is the keypad overlay of numeric controls. It only accumulates
// characters; nothing is evaluated.
type Calculator struct {
	name   string
	buffer string
	open   bool
}

// OpenCalculator starts a keypad for the named field, seeded with its current value.
func OpenCalculator(name, current string) *Calculator {
	return &Calculator{name: name, buffer: current, open: true}
}

// Name is the field the keypad writes to.
func (c *Calculator) Name() string {
	return c.name
}

// Display returns the current buffer.
func (c *Calculator) Display() string {
	return c.buffer
}

// IsOpen reports whether the overlay is still shown.
func (c *Calculator) IsOpen() bool {
	return c != nil && c.open
}

// Press appends a digit or decimal point. It reports the buffer to write back
// as the field value and whether the key was accepted.
func (c *Calculator) Press(r rune) (string, bool) {
	if !c.open || !IsKeypadRune(r) {
		return c.buffer, false
	}
	c.buffer += string(r)
	return c.buffer, true
}

// Clear empties the buffer and returns the empty value to write back.
func (c *Calculator) Clear() string {
	c.buffer = ""
	return c.buffer
}

// Close hides the overlay. The last written value stays in place.
func (c *Calculator) Close() {
	c.open = false
}

// IsKeypadRune reports whether r is a key on the keypad.
func IsKeypadRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}
