// Package notifications manages patient device tokens and delivers push
// notifications through the configured gateway. Patients register and remove
// their own tokens; psychologists can push to any of their patients.
package notifications
