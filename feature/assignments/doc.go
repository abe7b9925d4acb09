// Package assignments links questionnaires to patients with randomized
// delivery scheduling: each active assignment carries a next delivery time
// drawn at random from its daily window, submissions are tracked as
// completions, and assignments expire once past their end date.
package assignments
