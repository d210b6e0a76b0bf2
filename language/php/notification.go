package php

import (
	"regexp"
	"strings"
)

// Label prefixes popup notifications.
const Label = "PHP Namespace Resolver"

// iconMarkup matches "$(check)" style icon references in messages.
var iconMarkup = regexp.MustCompile(`\$\(.+?\)`)

type Level int

const (
	Info Level = iota
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "info"
}

// Notification is the single user-visible outcome of a command.
type Notification struct {
	Level   Level
	Message string
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Surface selects how messages are rendered.
type Surface int

const (
	// Popup messages carry the product label.
	Popup Surface = iota
	// StatusBar messages are short and unlabeled.
	StatusBar
)

// Format renders a raw message for the surface.
func (s Surface) Format(message string) string {
	message = strings.Join(strings.Fields(iconMarkup.ReplaceAllString(message, "")), " ")
	if s == StatusBar {
		return message
	}
	return Label + ": " + message
}
