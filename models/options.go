package models

import (
	"errors"
	"fmt"
	"strings"
)

// OptionSlotCount is the fixed number of option inputs the editor shows.
const OptionSlotCount = 4

// OptionSlots is the editor's fixed-capacity view of a question's options.
// Slots hold the options in their stored order, blank slots are empty strings.
type OptionSlots [OptionSlotCount]string

var (
	ErrTooFewOptions    = errors.New("a question needs at least 2 answer options")
	ErrCorrectNotListed = errors.New("the correct answer must be one of the provided options")
)

// PadOptions fills a slot set from a stored option list for editing. Options
// beyond the slot count are dropped, matching the editor's fixed form.
func PadOptions(options []string) OptionSlots {
	var slots OptionSlots
	for i := 0; i < len(options) && i < OptionSlotCount; i++ {
		slots[i] = options[i]
	}
	return slots
}

// Trim returns the non-blank options in slot order, ready to save.
func (s OptionSlots) Trim() []string {
	options := make([]string, 0, OptionSlotCount)
	for _, opt := range s {
		if strings.TrimSpace(opt) != "" {
			options = append(options, opt)
		}
	}
	return options
}

// Validate enforces the client-side question rules: at least two non-blank
// options, and the correct answer among them.
func (s OptionSlots) Validate(correctAnswer string) error {
	options := s.Trim()
	if len(options) < 2 {
		return ErrTooFewOptions
	}
	if correctAnswer == "" {
		return ErrCorrectNotListed
	}
	for _, opt := range options {
		if opt == correctAnswer {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrCorrectNotListed, correctAnswer)
}
