package main

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// newPrinter creates a printer for the user's locale, falling back to
// American English if the locale cannot be detected.
func newPrinter() *message.Printer {
	userLocale, err := jj.DetectIETF()
	if err != nil || userLocale == "" {
		T().Debugf("gramcheck: cannot detect locale, using en-US")
		userLocale = "en-US"
	}
	tag := language.Make(userLocale)
	T().Debugf("gramcheck: locale is %v", tag)
	return message.NewPrinter(tag)
}
