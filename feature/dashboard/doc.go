// Package dashboard assembles the practitioner home screen: headline counts
// and a merged feed of recent messages and assignments.
package dashboard
