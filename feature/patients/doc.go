// Package patients manages therapy client records: creation with generated
// login codes, practitioner-scoped listings, reassignment between
// psychologists and clinical summaries.
package patients
