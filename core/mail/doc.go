// Package mail sends credential emails to newly created accounts.
//
// Delivery uses SMTP with implicit TLS. An empty SMTP password disables
// sending, so development environments work without mail configuration.
// Features depend on the Mailer interface, not the SMTP implementation.
package mail
